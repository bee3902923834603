package model

// Record is implemented by every record type the admin client manages.
type Record interface {
	RecordID() string
	// Kind is the singular resource name, e.g. "customer".
	Kind() string
}
