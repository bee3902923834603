package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bite-admin/bite/pkg/model"
)

// DefaultTimeout bounds every request made by an HTTPClient.
const DefaultTimeout = 10 * time.Second

// HTTPClient implements Client against the bite REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	customers *httpResource[model.Customer]
	products  *httpResource[model.Product]
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.customers = &httpResource[model.Customer]{client: c, path: "/customers"}
	c.products = &httpResource[model.Product]{client: c, path: "/products"}
	return c
}

// Customers returns the /customers resource client.
func (c *HTTPClient) Customers() ResourceClient[model.Customer] { return c.customers }

// Products returns the /products resource client.
func (c *HTTPClient) Products() ResourceClient[model.Product] { return c.products }

// Version calls GET /version.
func (c *HTTPClient) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/version", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON response.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", target, "err", err)
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "url", target, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Method: method, URL: target, StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(data, &payload) == nil {
				httpErr.Message = payload.Error
			}
		}
		return httpErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}

// httpResource is the ResourceClient for one REST collection.
type httpResource[T model.Record] struct {
	client *HTTPClient
	path   string
}

func (r *httpResource[T]) List(ctx context.Context, filters map[string]any) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.path, TranslateFilters(filters), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *httpResource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (r *httpResource[T]) Create(ctx context.Context, draft T) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.path, nil, draft, &out)
	return out, err
}

func (r *httpResource[T]) Update(ctx context.Context, record T) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(record.RecordID()), nil, record, &out)
	return out, err
}

func (r *httpResource[T]) Delete(ctx context.Context, id string) (string, error) {
	if err := r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return "", err
	}
	return id, nil
}
