package state

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/bite-admin/bite/pkg/api"
	"github.com/bite-admin/bite/pkg/model"
)

// State is the root state: the list and the opened record of each resource.
type State struct {
	Customers Collection[model.Customer, CustomerFilters] `json:"customers"`
	Customer  Entity[model.Customer]                      `json:"customer"`
	Products  Collection[model.Product, ProductFilters]   `json:"products"`
	Product   Entity[model.Product]                       `json:"product"`
}

// InitialState returns the state a new Store starts from.
func InitialState() State {
	return State{
		Customers: newCollection[model.Customer, CustomerFilters](),
		Customer:  newEntity[model.Customer](),
		Products:  newCollection[model.Product, ProductFilters](),
		Product:   newEntity[model.Product](),
	}
}

var (
	customersReducer = collectionReducer[model.Customer, CustomerFilters]{
		merge:    model.MergeCustomer,
		setField: CustomerFilters.With,
	}
	productsReducer = collectionReducer[model.Product, ProductFilters]{
		merge:    model.MergeProduct,
		setField: ProductFilters.With,
	}
)

// Reduce is the root reducer. Every slice sees every action and ignores the
// ones addressed to other slices.
func Reduce(s State, a Action) State {
	s.Customers = customersReducer.reduce(s.Customers, a)
	s.Customer = reduceEntity(s.Customer, a, model.MergeCustomer)
	s.Products = productsReducer.reduce(s.Products, a)
	s.Product = reduceEntity(s.Product, a, model.MergeProduct)
	return s
}

// Store owns the root state. All changes go through Dispatch, which runs
// one reducer pass at a time; readers get snapshots that later dispatches
// never modify.
type Store struct {
	client api.Client
	logger *slog.Logger

	mu    sync.Mutex
	state State

	seq uint64 // dispatches applied, guarded by mu

	// notifyMu serialises delivery; delivered is the seq of the last
	// snapshot handed to subscribers.
	notifyMu  sync.Mutex
	delivered uint64

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to trace dispatched actions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithInitialState starts the store from st instead of InitialState.
func WithInitialState(st State) Option {
	return func(s *Store) { s.state = st }
}

// New returns a store whose thunks talk to client.
func New(client api.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  InitialState(),
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the client thunks run against.
func (s *Store) Client() api.Client { return s.client }

// Dispatch applies a and notifies subscribers with the resulting snapshot.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.seq++
	seq, snap := s.seq, s.state
	s.mu.Unlock()

	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("dispatch", "action", a.Type())
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq < s.delivered {
		// A newer snapshot already went out.
		return
	}
	s.delivered = seq

	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after dispatches. Snapshots arrive one
// at a time and never older than one already delivered; under concurrent
// dispatch a superseded snapshot is skipped. fn runs on the dispatching
// goroutine, must not block and must not call Dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}
