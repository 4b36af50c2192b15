package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the caller-visible taxonomy. Callers match them
// with errors.Is; messages carry the specifics.
var (
	// ErrAccountNotFound means a journal line references an account that
	// does not exist for the user. Detected before any balance mutation.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidStateTransition means the requested lifecycle transition is
	// not allowed from the entry's current status.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// ValidationError describes a single invariant violation on a journal entry.
type ValidationError struct {
	EntryID     string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Description)
	}
	return fmt.Sprintf("[%s] %s: %s", e.EntryID, e.Field, e.Description)
}

// StorageError wraps an opaque failure from the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
