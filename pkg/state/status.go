// Package state is the admin client's state container: one slice per
// resource for the loaded list and one for the currently opened record, a
// single Dispatch entry point, and selectors over immutable snapshots.
package state

// Status is the request lifecycle of a slice.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Phase marks where an asynchronous action is in its lifecycle.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}
