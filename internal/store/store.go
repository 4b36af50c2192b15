// Package store defines the persistence interface for accounts and journal
// entries, with in-memory and SQLite implementations. The engine is
// storage-agnostic: it only needs find-by-id, find-by-filter, and
// single-record save.
package store

import (
	"context"
	"errors"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// AccountFilter narrows FindAccounts results. Zero value matches everything.
type AccountFilter struct {
	Type       model.AccountType // empty = any type
	ActiveOnly bool
}

// EntryFilter narrows FindJournalEntries results. Zero value matches everything.
type EntryFilter struct {
	Status    model.EntryStatus // empty = any status
	Reference string            // empty = any reference
}

// Store is the persistence interface consumed by the ledger engine and the
// mapping resolver. Accounts are addressed by (userID, code); journal
// entries by ID. Saves are atomic per record only.
type Store interface {
	GetAccount(ctx context.Context, userID, code string) (*model.Account, error)
	SaveAccount(ctx context.Context, a *model.Account) error
	FindAccounts(ctx context.Context, userID string, f AccountFilter) ([]model.Account, error)

	CreateJournalEntry(ctx context.Context, e *model.JournalEntry) error
	GetJournalEntry(ctx context.Context, id string) (*model.JournalEntry, error)
	SaveJournalEntry(ctx context.Context, e *model.JournalEntry) error
	FindJournalEntries(ctx context.Context, userID string, f EntryFilter) ([]model.JournalEntry, error)
}

func matchAccount(a *model.Account, f AccountFilter) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.ActiveOnly && !a.IsActive {
		return false
	}
	return true
}

func matchEntry(e *model.JournalEntry, f EntryFilter) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Reference != "" && e.Reference != f.Reference {
		return false
	}
	return true
}
