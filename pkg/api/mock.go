package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/bite-admin/bite/pkg/model"
)

// MockClient implements Client with canned data held in memory, for
// development and testing. Writes are kept for the lifetime of the value.
type MockClient struct {
	customers *mockResource[model.Customer]
	products  *mockResource[model.Product]
}

var _ Client = (*MockClient)(nil)

// NewMockClient returns a MockClient seeded with three customers and three
// products.
func NewMockClient() *MockClient {
	return &MockClient{
		customers: &mockResource[model.Customer]{
			kind:  "customer",
			items: seedCustomers(),
			match: model.MatchCustomer,
			withID: func(c model.Customer, id string) model.Customer {
				c.ID = id
				return c
			},
		},
		products: &mockResource[model.Product]{
			kind:  "product",
			items: seedProducts(),
			match: model.MatchProduct,
			withID: func(p model.Product, id string) model.Product {
				p.ID = id
				return p
			},
		},
	}
}

func (m *MockClient) Customers() ResourceClient[model.Customer] { return m.customers }
func (m *MockClient) Products() ResourceClient[model.Product]   { return m.products }

func (m *MockClient) Version(context.Context) (string, error) {
	return "bite-api v0.1.0 (mock)", nil
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MockClient) FailWith(err error) {
	m.customers.setErr(err)
	m.products.setErr(err)
}

type mockResource[T model.Record] struct {
	mu     sync.Mutex
	kind   string
	items  []T
	err    error
	match  func(T, url.Values) bool
	withID func(T, string) T
}

func (r *mockResource[T]) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *mockResource[T]) notFound(id string) error {
	return &HTTPError{
		Method:     http.MethodGet,
		URL:        "mock://" + r.kind + "s/" + id,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s %q not found", r.kind, id),
	}
}

func (r *mockResource[T]) List(_ context.Context, filters map[string]any) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	query := TranslateFilters(filters)
	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		if r.match(item, query) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *mockResource[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	for _, item := range r.items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	return zero, r.notFound(id)
}

func (r *mockResource[T]) Create(_ context.Context, draft T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	created := r.withID(draft, uuid.NewString())
	r.items = append(r.items, created)
	return created, nil
}

func (r *mockResource[T]) Update(_ context.Context, record T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	for i, item := range r.items {
		if item.RecordID() == record.RecordID() {
			r.items[i] = record
			return record, nil
		}
	}
	return zero, r.notFound(record.RecordID())
}

func (r *mockResource[T]) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	for i, item := range r.items {
		if item.RecordID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return id, nil
		}
	}
	return "", r.notFound(id)
}

func seedCustomers() []model.Customer {
	return []model.Customer{
		{
			ID:        "cust-001",
			Name:      "Ayse Yilmaz",
			Email:     "ayse@example.com",
			Phone:     "+90 555 010 0001",
			Gender:    "female",
			CreatedAt: "2024-01-05T09:30:00.000Z",
			UpdatedAt: "2024-02-10T14:00:00.000Z",
		},
		{
			ID:        "cust-002",
			Name:      "Mehmet Demir",
			Email:     "mehmet@example.com",
			Gender:    "male",
			CreatedAt: "2024-01-12T11:00:00.000Z",
			UpdatedAt: "2024-01-12T11:00:00.000Z",
		},
		{
			ID:        "cust-003",
			Name:      "Elif Kaya",
			Email:     "elif@example.com",
			Phone:     "+90 555 010 0003",
			Gender:    "female",
			CreatedAt: "2024-03-02T08:15:00.000Z",
			UpdatedAt: "2024-03-20T16:45:00.000Z",
		},
	}
}

func seedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "prod-001",
			Name:        "Wireless Mouse",
			Description: "2.4GHz ergonomic mouse",
			Price:       24.99,
			Category:    "electronics",
			Stock:       120,
			TotalSold:   340,
			CreatedAt:   "2024-01-03T10:00:00.000Z",
			UpdatedAt:   "2024-02-01T10:00:00.000Z",
		},
		{
			ID:          "prod-002",
			Name:        "Go Programming Book",
			Description: "Idiomatic Go from first principles",
			Price:       39.5,
			Category:    "books",
			Stock:       15,
			TotalSold:   58,
			CreatedAt:   "2024-01-20T10:00:00.000Z",
			UpdatedAt:   "2024-01-20T10:00:00.000Z",
		},
		{
			ID:          "prod-003",
			Name:        "Linen Shirt",
			Description: "Breathable summer shirt",
			Price:       45,
			Category:    "clothing",
			Stock:       0,
			TotalSold:   210,
			CreatedAt:   "2024-02-14T10:00:00.000Z",
			UpdatedAt:   "2024-04-01T10:00:00.000Z",
		},
	}
}
