package state

import "github.com/bite-admin/bite/pkg/model"

// Entity is the singular slice: the record currently opened for viewing or
// editing. Current is nil until a record is loaded and after it is deleted.
type Entity[T model.Record] struct {
	Current *T     `json:"current"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
}

func newEntity[T model.Record]() Entity[T] {
	return Entity[T]{Status: StatusIdle}
}

// reduceEntity applies a to s. Actions for other slices return s unchanged.
// The stored record is never modified in place: a merge produces a new
// value so snapshots handed to readers stay valid.
func reduceEntity[T model.Record](s Entity[T], a Action, merge func(*T, T)) Entity[T] {
	switch a := a.(type) {
	case FetchOne[T]:
		switch a.Phase {
		case Pending:
			s.Status = StatusLoading
		case Fulfilled:
			record := a.Record
			s.Current = &record
			s.Status = StatusSucceeded
		case Rejected:
			s.Status = StatusFailed
			s.Error = messageOf(a.Err, a.fallback())
		}

	case UpdateOne[T]:
		switch a.Phase {
		case Fulfilled:
			s.Current = mergeCurrent(s.Current, a.Record, merge)
		case Rejected:
			s.Error = messageOf(a.Err, a.fallback())
		}

	case DeleteOne[T]:
		switch a.Phase {
		case Fulfilled:
			s.Current = nil
		case Rejected:
			s.Error = messageOf(a.Err, a.fallback())
		}

	case SetCurrent[T]:
		record := a.Record
		s.Current = &record

	case PatchCurrent[T]:
		s.Current = mergeCurrent(s.Current, a.Record, merge)
	}
	return s
}

// mergeCurrent returns a copy of current with src merged in, or current
// itself when there is nothing loaded or the ids differ.
func mergeCurrent[T model.Record](current *T, src T, merge func(*T, T)) *T {
	if current == nil || (*current).RecordID() != src.RecordID() {
		return current
	}
	next := *current
	merge(&next, src)
	return &next
}
