package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// Memory is a mutex-guarded in-memory Store. It is the default for tests
// and throwaway runs; records are copied on the way in and out so callers
// never share state with the store.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]map[string]model.Account // userID -> code -> account
	entries  map[string]model.JournalEntry       // entry ID -> entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]map[string]model.Account),
		entries:  make(map[string]model.JournalEntry),
	}
}

// GetAccount returns the account for (userID, code), or ErrNotFound.
func (m *Memory) GetAccount(_ context.Context, userID, code string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[userID][code]
	if !ok {
		return nil, fmt.Errorf("account %s/%s: %w", userID, code, ErrNotFound)
	}
	out := a
	return &out, nil
}

// SaveAccount upserts an account keyed by (userID, code).
func (m *Memory) SaveAccount(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accounts[a.UserID] == nil {
		m.accounts[a.UserID] = make(map[string]model.Account)
	}
	saved := *a
	saved.UpdatedAt = time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}
	m.accounts[a.UserID][a.Code] = saved
	return nil
}

// FindAccounts returns the user's accounts matching the filter, ordered by code.
func (m *Memory) FindAccounts(_ context.Context, userID string, f AccountFilter) ([]model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Account
	for _, a := range m.accounts[userID] {
		if matchAccount(&a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// CreateJournalEntry stores a new entry. The ID must be unused.
func (m *Memory) CreateJournalEntry(_ context.Context, e *model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[e.ID]; ok {
		return fmt.Errorf("journal entry %s already exists", e.ID)
	}
	saved := copyEntry(e)
	saved.CreatedAt = time.Now().UTC()
	saved.UpdatedAt = saved.CreatedAt
	m.entries[e.ID] = saved
	return nil
}

// GetJournalEntry returns the entry by ID, or ErrNotFound.
func (m *Memory) GetJournalEntry(_ context.Context, id string) (*model.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	out := copyEntry(&e)
	return &out, nil
}

// SaveJournalEntry replaces an existing entry.
func (m *Memory) SaveJournalEntry(_ context.Context, e *model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.entries[e.ID]
	if !ok {
		return fmt.Errorf("journal entry %s: %w", e.ID, ErrNotFound)
	}
	saved := copyEntry(e)
	saved.CreatedAt = old.CreatedAt
	saved.UpdatedAt = time.Now().UTC()
	m.entries[e.ID] = saved
	return nil
}

// FindJournalEntries returns the user's entries matching the filter, newest first.
func (m *Memory) FindJournalEntries(_ context.Context, userID string, f EntryFilter) ([]model.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.JournalEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if matchEntry(&e, f) {
			out = append(out, copyEntry(&e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out, nil
}

func copyEntry(e *model.JournalEntry) model.JournalEntry {
	out := *e
	out.Lines = make([]model.Line, len(e.Lines))
	copy(out.Lines, e.Lines)
	return out
}
