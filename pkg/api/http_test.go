package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bite-admin/bite/pkg/model"
)

func TestHTTPClient_ListSendsTranslatedQuery(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]model.Customer{{ID: "c-1", Name: "Ali"}})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL + "/api/")
	list, err := c.Customers().List(context.Background(), map[string]any{"name": "al", "gender": ""})
	require.NoError(t, err)

	assert.Equal(t, "/api/customers", gotPath)
	assert.Equal(t, "name%5Blike%5D=al", gotQuery)
	require.Len(t, list, 1)
	assert.Equal(t, "c-1", list[0].ID)
}

func TestHTTPClient_ListNullBodyIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer ts.Close()

	list, err := NewHTTPClient(ts.URL).Products().List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestHTTPClient_CRUDPaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			var p model.Product
			json.NewDecoder(r.Body).Decode(&p)
			p.ID = "p-new"
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(p)
		default:
			var p model.Product
			if r.Body != nil {
				json.NewDecoder(r.Body).Decode(&p)
			}
			p.ID = "p-1"
			json.NewEncoder(w).Encode(p)
		}
	}))
	defer ts.Close()

	ctx := context.Background()
	products := NewHTTPClient(ts.URL).Products()

	created, err := products.Create(ctx, model.Product{Name: "Lamp", Price: 10})
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID)
	assert.Equal(t, "Lamp", created.Name)

	got, err := products.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)

	updated, err := products.Update(ctx, model.Product{ID: "p-1", Name: "Desk lamp"})
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", updated.Name)

	id, err := products.Delete(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", id)

	assert.Equal(t, []call{
		{http.MethodPost, "/products"},
		{http.MethodGet, "/products/p-1"},
		{http.MethodPut, "/products/p-1"},
		{http.MethodDelete, "/products/p-1"},
	}, calls)
}

func TestHTTPClient_ErrorsPassThrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"customer \"nope\" not found"}`))
	}))
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Customers().Get(context.Background(), "nope")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, `request failed with status code 404: customer "nope" not found`, err.Error())
}

func TestHTTPClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewHTTPClient(url).Customers().List(context.Background(), nil)
	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestHTTPClient_Version(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		w.Write([]byte(`{"version":"bite-api v1.2.3"}`))
	}))
	defer ts.Close()

	v, err := NewHTTPClient(ts.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bite-api v1.2.3", v)
}
