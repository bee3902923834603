// Package api contains the resource clients the admin store uses to talk to
// the bite REST backend.
package api

import (
	"context"

	"github.com/bite-admin/bite/pkg/model"
)

// ResourceClient issues CRUD calls for one record type. Errors are returned
// exactly as the transport produced them; there is no retry.
type ResourceClient[T model.Record] interface {
	// List returns every record matching the raw filters. Empty filter values
	// are dropped before the request is sent.
	List(ctx context.Context, filters map[string]any) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Create sends a record without an id and returns the stored record with
	// the id assigned by the server.
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	// Delete removes the record and echoes id back.
	Delete(ctx context.Context, id string) (string, error)
}

// Client bundles the resource clients for the bite backend.
type Client interface {
	Customers() ResourceClient[model.Customer]
	Products() ResourceClient[model.Product]
	// Version reports the backend build.
	Version(ctx context.Context) (string, error)
}
