package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bite-admin/bite/pkg/model"
)

// MemoryStore is an in-memory Store backed by maps and a read/write mutex.
// Records are listed in creation order.
type MemoryStore struct {
	customers *memoryRecords[model.Customer]
	products  *memoryRecords[model.Product]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: newMemoryRecords[model.Customer](),
		products:  newMemoryRecords[model.Product](),
	}
}

func (m *MemoryStore) Customers() RecordStore[model.Customer] { return m.customers }
func (m *MemoryStore) Products() RecordStore[model.Product]   { return m.products }
func (m *MemoryStore) Ping(context.Context) error             { return nil }
func (m *MemoryStore) Close() error                           { return nil }

type memoryRecords[T model.Record] struct {
	mu    sync.RWMutex
	data  map[string]T
	order []string
}

func newMemoryRecords[T model.Record]() *memoryRecords[T] {
	return &memoryRecords[T]{data: make(map[string]T)}
}

func (s *memoryRecords[T]) List(context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out, nil
}

func (s *memoryRecords[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[id]
	if !ok {
		return r, notFound[T](id)
	}
	return r, nil
}

func (s *memoryRecords[T]) Create(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := record.RecordID()
	if _, exists := s.data[id]; exists {
		return alreadyExists[T](id)
	}
	s.data[id] = record
	s.order = append(s.order, id)
	return nil
}

func (s *memoryRecords[T]) Update(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := record.RecordID()
	if _, exists := s.data[id]; !exists {
		return notFound[T](id)
	}
	s.data[id] = record
	return nil
}

func (s *memoryRecords[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[id]; !exists {
		return notFound[T](id)
	}
	delete(s.data, id)
	s.order = slices.DeleteFunc(s.order, func(x string) bool { return x == id })
	return nil
}

func notFound[T model.Record](id string) error {
	var zero T
	return fmt.Errorf("%s %q: %w", zero.Kind(), id, ErrNotFound)
}

func alreadyExists[T model.Record](id string) error {
	var zero T
	return fmt.Errorf("%s %q: %w", zero.Kind(), id, ErrAlreadyExists)
}
