package state

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bite-admin/bite/pkg/api"
	"github.com/bite-admin/bite/pkg/model"
)

// Thunk is an asynchronous action: it dispatches a pending action, performs
// a request through the client and dispatches the settle action. The error
// it returns is an *OperationError when the request failed.
type Thunk func(ctx context.Context, dispatch func(Action), client api.Client) error

// Run executes t against the store. Thunks are neither ordered nor
// cancelled relative to each other: whichever settles last wins.
func (s *Store) Run(ctx context.Context, t Thunk) error {
	return t(ctx, s.Dispatch, s.client)
}

// RefreshAll fetches both collections concurrently with their current
// filters.
func (s *Store) RefreshAll(ctx context.Context) error {
	st := s.State()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx, FetchCustomers(st.Customers.Filters.Params())) })
	g.Go(func() error { return s.Run(ctx, FetchProducts(st.Products.Filters.Params())) })
	return g.Wait()
}

func customers(c api.Client) api.ResourceClient[model.Customer] { return c.Customers() }
func products(c api.Client) api.ResourceClient[model.Product]   { return c.Products() }

// FetchCustomers loads the customers list.
func FetchCustomers(filters map[string]any) Thunk { return fetchAll(customers, filters) }

// AddCustomer creates a customer and appends it to the list.
func AddCustomer(draft model.Customer) Thunk { return addRecord(customers, draft) }

// UpdateCustomer saves a customer and merges the result into its list row.
func UpdateCustomer(c model.Customer) Thunk { return updateRecord(customers, c) }

// DeleteCustomer deletes a customer and removes it from the list.
func DeleteCustomer(id string) Thunk { return deleteRecord(customers, id) }

// FetchCustomerByID loads one customer into the opened-record slice.
func FetchCustomerByID(id string) Thunk { return fetchOne(customers, id) }

// UpdateCurrentCustomer saves a customer and merges the result into the
// opened record.
func UpdateCurrentCustomer(c model.Customer) Thunk { return updateOne(customers, c) }

// DeleteCurrentCustomer deletes a customer and clears the opened record.
func DeleteCurrentCustomer(id string) Thunk { return deleteOne(customers, id) }

// FetchProducts loads the products list.
func FetchProducts(filters map[string]any) Thunk { return fetchAll(products, filters) }

// AddProduct creates a product and appends it to the list.
func AddProduct(draft model.Product) Thunk { return addRecord(products, draft) }

// UpdateProduct saves a product and merges the result into its list row.
func UpdateProduct(p model.Product) Thunk { return updateRecord(products, p) }

// DeleteProduct deletes a product and removes it from the list.
func DeleteProduct(id string) Thunk { return deleteRecord(products, id) }

// FetchProductByID loads one product into the opened-record slice.
func FetchProductByID(id string) Thunk { return fetchOne(products, id) }

// UpdateCurrentProduct saves a product and merges the result into the
// opened record.
func UpdateCurrentProduct(p model.Product) Thunk { return updateOne(products, p) }

// DeleteCurrentProduct deletes a product and clears the opened record.
func DeleteCurrentProduct(id string) Thunk { return deleteOne(products, id) }

// settle dispatches the rejected action and converts err for the caller.
func settle(dispatch func(Action), rejected asyncAction, err error) error {
	dispatch(rejected)
	return &OperationError{
		Op:      rejected.op(),
		Message: messageOf(err, rejected.fallback()),
		Err:     err,
	}
}

func fetchAll[T model.Record](res func(api.Client) api.ResourceClient[T], filters map[string]any) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(FetchAll[T]{Phase: Pending, Filters: filters})
		records, err := res(c).List(ctx, filters)
		if err != nil {
			return settle(dispatch, FetchAll[T]{Phase: Rejected, Filters: filters, Err: err}, err)
		}
		dispatch(FetchAll[T]{Phase: Fulfilled, Filters: filters, Records: records})
		return nil
	}
}

func addRecord[T model.Record](res func(api.Client) api.ResourceClient[T], draft T) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(AddRecord[T]{Phase: Pending, Draft: draft})
		record, err := res(c).Create(ctx, draft)
		if err != nil {
			return settle(dispatch, AddRecord[T]{Phase: Rejected, Draft: draft, Err: err}, err)
		}
		dispatch(AddRecord[T]{Phase: Fulfilled, Draft: draft, Record: record})
		return nil
	}
}

func updateRecord[T model.Record](res func(api.Client) api.ResourceClient[T], record T) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(UpdateRecord[T]{Phase: Pending, Record: record})
		updated, err := res(c).Update(ctx, record)
		if err != nil {
			return settle(dispatch, UpdateRecord[T]{Phase: Rejected, Record: record, Err: err}, err)
		}
		dispatch(UpdateRecord[T]{Phase: Fulfilled, Record: updated})
		return nil
	}
}

func deleteRecord[T model.Record](res func(api.Client) api.ResourceClient[T], id string) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(DeleteRecord[T]{Phase: Pending, ID: id})
		deleted, err := res(c).Delete(ctx, id)
		if err != nil {
			return settle(dispatch, DeleteRecord[T]{Phase: Rejected, ID: id, Err: err}, err)
		}
		dispatch(DeleteRecord[T]{Phase: Fulfilled, ID: deleted})
		return nil
	}
}

func fetchOne[T model.Record](res func(api.Client) api.ResourceClient[T], id string) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(FetchOne[T]{Phase: Pending, ID: id})
		record, err := res(c).Get(ctx, id)
		if err != nil {
			return settle(dispatch, FetchOne[T]{Phase: Rejected, ID: id, Err: err}, err)
		}
		dispatch(FetchOne[T]{Phase: Fulfilled, ID: id, Record: record})
		return nil
	}
}

func updateOne[T model.Record](res func(api.Client) api.ResourceClient[T], record T) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(UpdateOne[T]{Phase: Pending, Record: record})
		updated, err := res(c).Update(ctx, record)
		if err != nil {
			return settle(dispatch, UpdateOne[T]{Phase: Rejected, Record: record, Err: err}, err)
		}
		dispatch(UpdateOne[T]{Phase: Fulfilled, Record: updated})
		return nil
	}
}

func deleteOne[T model.Record](res func(api.Client) api.ResourceClient[T], id string) Thunk {
	return func(ctx context.Context, dispatch func(Action), c api.Client) error {
		dispatch(DeleteOne[T]{Phase: Pending, ID: id})
		deleted, err := res(c).Delete(ctx, id)
		if err != nil {
			return settle(dispatch, DeleteOne[T]{Phase: Rejected, ID: id, Err: err}, err)
		}
		dispatch(DeleteOne[T]{Phase: Fulfilled, ID: deleted})
		return nil
	}
}
