// Package store defines persistence for the bite API server. Implementations
// include an in-memory store (dev/testing), an etcd-backed store and a
// PostgreSQL-backed store.
package store

import (
	"context"
	"errors"

	"github.com/bite-admin/bite/pkg/model"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by Create for a duplicate id.
	ErrAlreadyExists = errors.New("already exists")
)

// RecordStore provides CRUD operations for one record type. List returns
// records in a stable order.
type RecordStore[T model.Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
}

// Store aggregates the record stores into a single handle.
type Store interface {
	Customers() RecordStore[model.Customer]
	Products() RecordStore[model.Product]
	// Ping reports whether the backing service is reachable.
	Ping(ctx context.Context) error
	Close() error
}
