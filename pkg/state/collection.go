package state

import (
	"slices"

	"github.com/bite-admin/bite/pkg/model"
)

// Collection is the plural slice: the last fetched list and the filters the
// consumer edits before fetching again.
type Collection[T model.Record, F filterSet] struct {
	Items   []T    `json:"items"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
	Filters F      `json:"filters"`
}

func newCollection[T model.Record, F filterSet]() Collection[T, F] {
	return Collection[T, F]{Items: []T{}, Status: StatusIdle}
}

// collectionReducer holds the per-resource parts of a collection reducer.
type collectionReducer[T model.Record, F filterSet] struct {
	merge    func(*T, T)
	setField func(F, string, string) F
}

// reduce applies a to s. Actions for other slices return s unchanged.
// Items is copy-on-write: a published slice is never written to.
func (r collectionReducer[T, F]) reduce(s Collection[T, F], a Action) Collection[T, F] {
	switch a := a.(type) {
	case FetchAll[T]:
		switch a.Phase {
		case Pending:
			s.Status = StatusLoading
		case Fulfilled:
			s.Items = slices.Clone(a.Records)
			if s.Items == nil {
				s.Items = []T{}
			}
			s.Status = StatusSucceeded
		case Rejected:
			s.Status = StatusFailed
			s.Error = messageOf(a.Err, a.fallback())
		}

	case AddRecord[T]:
		switch a.Phase {
		case Fulfilled:
			s.Items = r.upsert(s.Items, a.Record)
			s.Status = StatusSucceeded
		case Rejected:
			s.Error = messageOf(a.Err, a.fallback())
		}

	case UpdateRecord[T]:
		switch a.Phase {
		case Fulfilled:
			s.Items = r.patch(s.Items, a.Record)
		case Rejected:
			s.Error = messageOf(a.Err, a.fallback())
		}

	case DeleteRecord[T]:
		switch a.Phase {
		case Fulfilled:
			s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(item T) bool {
				return item.RecordID() == a.ID
			})
		case Rejected:
			s.Error = messageOf(a.Err, a.fallback())
		}

	case AppendRecord[T]:
		s.Items = r.upsert(s.Items, a.Record)

	case PatchRecord[T]:
		s.Items = r.patch(s.Items, a.Record)

	case SetFilter[F]:
		s.Filters = r.setField(s.Filters, a.Field, a.Value)

	case ResetFilters[F]:
		var initial F
		s.Filters = initial
	}
	return s
}

// upsert appends src, or merges it into the row with the same id when a
// fetch that settled first already returned it. Ids stay unique.
func (r collectionReducer[T, F]) upsert(items []T, src T) []T {
	if slices.ContainsFunc(items, func(item T) bool { return item.RecordID() == src.RecordID() }) {
		return r.patch(items, src)
	}
	return append(slices.Clip(items), src)
}

// patch merges src into the row with the same id. Without a match items is
// returned as is.
func (r collectionReducer[T, F]) patch(items []T, src T) []T {
	i := slices.IndexFunc(items, func(item T) bool { return item.RecordID() == src.RecordID() })
	if i < 0 {
		return items
	}
	next := slices.Clone(items)
	r.merge(&next[i], src)
	return next
}
