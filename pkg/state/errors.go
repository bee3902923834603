package state

import "fmt"

// OperationError is returned by a thunk whose request failed. Message is the
// text recorded in the slice; Err is the resource client error, unchanged.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *OperationError) Unwrap() error { return e.Err }

// messageOf returns err's text, or fallback when err has none.
func messageOf(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
