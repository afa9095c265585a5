// Package ledger owns the persisted Transaction and Invoice entities. Every
// multi-row mutation runs inside a single storage transaction so readers
// never observe a partially applied batch.
package ledger

import "fmt"

// NotFoundError reports a referenced invoice or transaction id that does
// not exist. Fatal to the specific operation, not to any batch.
type NotFoundError struct {
	Kind string // "invoice" or "transaction"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PersistenceError wraps a failed storage transaction. Nothing is partially
// committed when one is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
