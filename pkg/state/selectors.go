package state

import (
	"slices"
	"strings"

	"github.com/bite-admin/bite/pkg/model"
)

// Selectors are plain functions over a snapshot. Lookups by id scan the list
// linearly; lists are small enough that no index is kept.

func AllCustomers(s State) []model.Customer { return s.Customers.Items }

func CustomerByID(s State, id string) (model.Customer, bool) { return findByID(s.Customers.Items, id) }

func SelectCustomerFilters(s State) CustomerFilters { return s.Customers.Filters }

// CurrentCustomer returns the opened customer, or nil.
func CurrentCustomer(s State) *model.Customer { return s.Customer.Current }

func AllProducts(s State) []model.Product { return s.Products.Items }

func ProductByID(s State, id string) (model.Product, bool) { return findByID(s.Products.Items, id) }

func SelectProductFilters(s State) ProductFilters { return s.Products.Filters }

// CurrentProduct returns the opened product, or nil.
func CurrentProduct(s State) *model.Product { return s.Product.Current }

// CustomersStatus returns the status and last error of the customers list.
func CustomersStatus(s State) (Status, string) { return s.Customers.Status, s.Customers.Error }

// CustomerStatus returns the status and last error of the opened customer.
func CustomerStatus(s State) (Status, string) { return s.Customer.Status, s.Customer.Error }

func ProductsStatus(s State) (Status, string) { return s.Products.Status, s.Products.Error }
func ProductStatus(s State) (Status, string)  { return s.Product.Status, s.Product.Error }

func findByID[T model.Record](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// SortByName returns a copy of items ordered by name, case-insensitively,
// then by id.
func SortByName[T model.Record](items []T, name func(T) string) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := strings.Compare(strings.ToLower(name(a)), strings.ToLower(name(b))); c != 0 {
			return c
		}
		return strings.Compare(a.RecordID(), b.RecordID())
	})
	return out
}

// Page returns the 1-based page of items and the number of pages. Pages out
// of range are clamped. An empty list has one empty page.
func Page[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = len(items)
		if size == 0 {
			size = 1
		}
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	page = min(max(page, 1), pages)
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return items[start:end], pages
}

func CustomerName(c model.Customer) string { return c.Name }
func ProductName(p model.Product) string   { return p.Name }
