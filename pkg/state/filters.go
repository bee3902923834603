package state

// filterSet is implemented by the filter state of each collection slice.
type filterSet interface {
	comparable
	// Params returns the raw filters passed to the resource client.
	Params() map[string]any
	sliceName() string
}

// CustomerFilters is the filter state of the customers list.
type CustomerFilters struct {
	Name   string `json:"name" yaml:"name"`
	Gender string `json:"gender" yaml:"gender"`
}

func (f CustomerFilters) Params() map[string]any {
	return map[string]any{"name": f.Name, "gender": f.Gender}
}

func (CustomerFilters) sliceName() string { return "customers" }

// With returns f with field set to value. Unknown fields leave f unchanged.
func (f CustomerFilters) With(field, value string) CustomerFilters {
	switch field {
	case "name":
		f.Name = value
	case "gender":
		f.Gender = value
	}
	return f
}

// ProductFilters is the filter state of the products list.
type ProductFilters struct {
	Search   string `json:"search" yaml:"search"`
	Category string `json:"category" yaml:"category"`
}

func (f ProductFilters) Params() map[string]any {
	return map[string]any{"search": f.Search, "category": f.Category}
}

func (ProductFilters) sliceName() string { return "products" }

// With returns f with field set to value. Unknown fields leave f unchanged.
func (f ProductFilters) With(field, value string) ProductFilters {
	switch field {
	case "search":
		f.Search = value
	case "category":
		f.Category = value
	}
	return f
}
