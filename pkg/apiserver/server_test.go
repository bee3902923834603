package apiserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bite-admin/bite/pkg/apiserver"
	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/store"
)

// newTestServer creates an httptest.Server backed by an in-memory store.
func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	srv := apiserver.NewServer(s, apiserver.DefaultServerOptions())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestProbes(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/api/version"} {
		resp := doJSON(t, http.MethodGet, ts.URL+path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestVersion(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/version", nil)
	assert.Equal(t, map[string]string{"version": "bite-api dev"}, decode[map[string]string](t, resp))
}

func TestCustomerCRUD(t *testing.T) {
	ts, _ := newTestServer(t)
	base := ts.URL + "/api/customers"

	resp := doJSON(t, http.MethodPost, base, model.Customer{
		Name: "Ada", Email: "ada@example.com",
		CreatedAt: "2024-01-01T00:00:00.000Z", UpdatedAt: "2024-01-01T00:00:00.000Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[model.Customer](t, resp)
	require.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[model.Customer](t, resp))

	created.Phone = "+1 555 0100"
	created.UpdatedAt = "2024-02-01T00:00:00.000Z"
	resp = doJSON(t, http.MethodPut, base+"/"+created.ID, created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "+1 555 0100", decode[model.Customer](t, resp).Phone)

	resp = doJSON(t, http.MethodDelete, base+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "not found")
}

func TestCreateValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	cases := []struct {
		name string
		path string
		body any
	}{
		{"customer without email", "/api/customers", model.Customer{Name: "Ada"}},
		{"customer bad gender", "/api/customers", model.Customer{Name: "Ada", Email: "a@b.co", Gender: "x"}},
		{"product negative price", "/api/products", model.Product{Name: "Lamp", Category: "home", Price: -1}},
		{"product without category", "/api/products", model.Product{Name: "Lamp"}},
		{"bad id", "/api/products", model.Product{ID: "a/b", Name: "Lamp", Category: "home"}},
		{"not json", "/api/products", "{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateDuplicateID(t *testing.T) {
	ts, _ := newTestServer(t)
	p := model.Product{ID: "p-1", Name: "Lamp", Category: "home"}
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, ts.URL+"/api/products", p).StatusCode)
	assert.Equal(t, http.StatusConflict, doJSON(t, http.MethodPost, ts.URL+"/api/products", p).StatusCode)
}

func TestUpdateMismatchedAndMissing(t *testing.T) {
	ts, _ := newTestServer(t)
	p := model.Product{ID: "p-1", Name: "Lamp", Category: "home"}

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/products/p-1", p)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/products/p-2", p)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListFilters(t *testing.T) {
	ts, s := newTestServer(t)
	ctx := context.Background()
	for _, c := range []model.Customer{
		{ID: "c1", Name: "Ayse Yilmaz", Email: "a@example.com", Gender: "female"},
		{ID: "c2", Name: "Mehmet Demir", Email: "m@example.com", Gender: "male"},
		{ID: "c3", Name: "Elif Kaya", Email: "e@example.com", Gender: "female"},
	} {
		require.NoError(t, s.Customers().Create(ctx, c))
	}
	for _, p := range []model.Product{
		{ID: "p1", Name: "Wireless Mouse", Description: "ergonomic", Category: "electronics"},
		{ID: "p2", Name: "Go Book", Description: "programming", Category: "books"},
	} {
		require.NoError(t, s.Products().Create(ctx, p))
	}

	ids := func(path string) []string {
		resp := doJSON(t, http.MethodGet, ts.URL+path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []string
		for _, r := range decode[[]map[string]any](t, resp) {
			out = append(out, r["id"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"c1", "c2", "c3"}, ids("/api/customers"))
	assert.Equal(t, []string{"c1", "c3"}, ids("/api/customers?gender=female"))
	assert.Equal(t, []string{"c3"}, ids("/api/customers?name%5Blike%5D=KAYA"))
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids("/api/customers?age=30"), "unknown keys are ignored")
	assert.Equal(t, []string{"p1"}, ids("/api/products?search=ergo"))
	assert.Equal(t, []string{"p2"}, ids("/api/products?category=books"))
	assert.Nil(t, ids("/api/products?category=home"))
}

func TestEmptyListIsArray(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/products", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestMiddlewareHeaders(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = doJSON(t, http.MethodOptions, ts.URL+"/api/customers", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCORSAllowedOrigins(t *testing.T) {
	opts := apiserver.DefaultServerOptions()
	opts.AllowedOrigins = []string{"http://admin.local"}
	srv := apiserver.NewServer(store.NewMemoryStore(), opts)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://admin.local")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://admin.local", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsCountRequests(t *testing.T) {
	ts, _ := newTestServer(t)
	doJSON(t, http.MethodPost, ts.URL+"/api/products", model.Product{Name: "Lamp", Category: "home"})
	doJSON(t, http.MethodGet, ts.URL+"/api/products/missing", nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bite_requests_total{code="201",method="POST"} 1`)
	assert.Contains(t, string(body), `bite_requests_total{code="404",method="GET"} 1`)
	assert.Contains(t, string(body), `bite_records{kind="product"} 1`)
}
