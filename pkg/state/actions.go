package state

import (
	"github.com/bite-admin/bite/pkg/model"
)

// Action is a state transition request handed to Store.Dispatch. The set of
// actions is closed: only the types in this file implement it.
type Action interface {
	// Type names the action, e.g. "customers/fetch/pending".
	Type() string
	action()
}

// asyncAction is implemented by the request/settle actions dispatched by
// thunks.
type asyncAction interface {
	Action
	op() string
	fallback() string
}

func kindOf[T model.Record]() string {
	var zero T
	return zero.Kind()
}

func pluralOf[T model.Record]() string { return kindOf[T]() + "s" }

func failedTo(verb, noun string) string { return "Failed to " + verb + " " + noun }

// FetchOne loads a single record into the entity slice.
type FetchOne[T model.Record] struct {
	Phase  Phase
	ID     string
	Record T
	Err    error
}

// UpdateOne stores an edited record and merges the result into the entity
// slice.
type UpdateOne[T model.Record] struct {
	Phase  Phase
	Record T
	Err    error
}

// DeleteOne deletes a record and clears the entity slice.
type DeleteOne[T model.Record] struct {
	Phase Phase
	ID    string
	Err   error
}

// FetchAll loads the collection slice with the records matching Filters.
type FetchAll[T model.Record] struct {
	Phase   Phase
	Filters map[string]any
	Records []T
	Err     error
}

// AddRecord creates a record and appends the stored version to the
// collection.
type AddRecord[T model.Record] struct {
	Phase  Phase
	Draft  T
	Record T
	Err    error
}

// UpdateRecord stores an edited record and merges the result into its row.
type UpdateRecord[T model.Record] struct {
	Phase  Phase
	Record T
	Err    error
}

// DeleteRecord deletes a record and drops its row from the collection.
type DeleteRecord[T model.Record] struct {
	Phase Phase
	ID    string
	Err   error
}

// SetCurrent replaces the entity slice's record without a request.
type SetCurrent[T model.Record] struct{ Record T }

// PatchCurrent merges Record into the entity slice's record when the ids
// match.
type PatchCurrent[T model.Record] struct{ Record T }

// AppendRecord appends Record to the collection without a request.
type AppendRecord[T model.Record] struct{ Record T }

// PatchRecord merges Record into the collection row with the same id.
type PatchRecord[T model.Record] struct{ Record T }

// SetFilter overwrites one field of a collection's filter state.
type SetFilter[F filterSet] struct {
	Field string
	Value string
}

// ResetFilters restores a collection's filter state to its initial value.
type ResetFilters[F filterSet] struct{}

func (a FetchOne[T]) op() string       { return kindOf[T]() + "/fetchById" }
func (a FetchOne[T]) fallback() string { return failedTo("fetch", kindOf[T]()) }
func (a FetchOne[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a UpdateOne[T]) op() string       { return kindOf[T]() + "/update" }
func (a UpdateOne[T]) fallback() string { return failedTo("update", kindOf[T]()) }
func (a UpdateOne[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a DeleteOne[T]) op() string       { return kindOf[T]() + "/delete" }
func (a DeleteOne[T]) fallback() string { return failedTo("delete", kindOf[T]()) }
func (a DeleteOne[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a FetchAll[T]) op() string       { return pluralOf[T]() + "/fetch" }
func (a FetchAll[T]) fallback() string { return failedTo("fetch", pluralOf[T]()) }
func (a FetchAll[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a AddRecord[T]) op() string       { return pluralOf[T]() + "/add" }
func (a AddRecord[T]) fallback() string { return failedTo("add", kindOf[T]()) }
func (a AddRecord[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a UpdateRecord[T]) op() string       { return pluralOf[T]() + "/update" }
func (a UpdateRecord[T]) fallback() string { return failedTo("update", kindOf[T]()) }
func (a UpdateRecord[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (a DeleteRecord[T]) op() string       { return pluralOf[T]() + "/delete" }
func (a DeleteRecord[T]) fallback() string { return failedTo("delete", kindOf[T]()) }
func (a DeleteRecord[T]) Type() string     { return a.op() + "/" + a.Phase.String() }

func (SetCurrent[T]) Type() string   { return kindOf[T]() + "/setCurrent" }
func (PatchCurrent[T]) Type() string { return kindOf[T]() + "/patchCurrent" }
func (AppendRecord[T]) Type() string { return pluralOf[T]() + "/append" }
func (PatchRecord[T]) Type() string  { return pluralOf[T]() + "/patch" }

func (a SetFilter[F]) Type() string {
	var zero F
	return zero.sliceName() + "/setFilter/" + a.Field
}

func (ResetFilters[F]) Type() string {
	var zero F
	return zero.sliceName() + "/resetFilters"
}

func (FetchOne[T]) action()     {}
func (UpdateOne[T]) action()    {}
func (DeleteOne[T]) action()    {}
func (FetchAll[T]) action()     {}
func (AddRecord[T]) action()    {}
func (UpdateRecord[T]) action() {}
func (DeleteRecord[T]) action() {}
func (SetCurrent[T]) action()   {}
func (PatchCurrent[T]) action() {}
func (AppendRecord[T]) action() {}
func (PatchRecord[T]) action()  {}
func (SetFilter[F]) action()    {}
func (ResetFilters[F]) action() {}
