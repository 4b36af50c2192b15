// Package ledger owns the journal entry lifecycle (draft, posted,
// cancelled) and keeps account balances consistent with posted lines.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

// Engine applies and undoes balance deltas on accounts as entries move
// through their lifecycle. Post and reverse for one user are serialized
// behind a per-user lock, so concurrent postings against the same account
// net out to the sum of their deltas.
type Engine struct {
	store store.Store

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewEngine creates an Engine on top of a Store.
func NewEngine(st store.Store) *Engine {
	return &Engine{store: st, users: make(map[string]*sync.Mutex)}
}

func (g *Engine) userLock(userID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.users[userID]
	if !ok {
		l = &sync.Mutex{}
		g.users[userID] = l
	}
	return l
}

// CreateEntryParams holds parameters for creating a draft journal entry.
type CreateEntryParams struct {
	UserID            string
	TransactionDate   time.Time
	Reference         string
	Description       string
	Lines             []model.Line
	PredictedCategory string
	Confidence        decimal.Decimal
}

// CreateBalancedEntry validates the balance law and persists a new draft
// entry. No account balances change until the entry is posted.
func (g *Engine) CreateBalancedEntry(ctx context.Context, params CreateEntryParams) (*model.JournalEntry, error) {
	date := params.TransactionDate
	if date.IsZero() {
		date = time.Now().UTC()
	}

	entry := &model.JournalEntry{
		ID:                uuid.NewString(),
		UserID:            params.UserID,
		TransactionDate:   date,
		Reference:         params.Reference,
		Description:       params.Description,
		Lines:             params.Lines,
		Status:            model.StatusDraft,
		PredictedCategory: params.PredictedCategory,
		Confidence:        params.Confidence,
	}

	if verrs := ValidateEntry(entry); len(verrs) > 0 {
		return nil, validationErr(verrs)
	}

	if err := g.store.CreateJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("creating journal entry", err)
	}
	return entry, nil
}

// Post applies a draft entry's line deltas to account balances, runs equity
// reconciliation, and marks the entry posted. Posting an already-posted
// entry is a no-op; posting a cancelled entry fails. All referenced
// accounts are resolved before the first balance mutation, so a missing
// account aborts with no partial application.
func (g *Engine) Post(ctx context.Context, entryID string) (*model.JournalEntry, error) {
	entry, err := g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lock := g.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a concurrent call may have won the race.
	entry, err = g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case model.StatusPosted:
		return entry, nil // idempotent guard, deltas applied exactly once
	case model.StatusCancelled:
		return nil, fmt.Errorf("post entry %s with status %s: %w", entry.ID, entry.Status, ErrInvalidStateTransition)
	}

	if verrs := ValidateEntry(entry); len(verrs) > 0 {
		return nil, validationErr(verrs)
	}

	accts, err := g.fetchLineAccounts(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err := g.applyLines(ctx, entry, accts, 1); err != nil {
		return nil, err
	}
	if err := g.reconcile(ctx, entry, accts, 1); err != nil {
		return nil, err
	}

	entry.Status = model.StatusPosted
	if err := g.store.SaveJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("saving posted entry", err)
	}
	return entry, nil
}

// Reverse undoes a posted entry's line deltas exactly, runs equity
// reconciliation with the negated effect, and marks the entry cancelled.
// Only posted entries can be reversed.
func (g *Engine) Reverse(ctx context.Context, entryID string) (*model.JournalEntry, error) {
	entry, err := g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lock := g.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	entry, err = g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != model.StatusPosted {
		return nil, fmt.Errorf("reverse entry %s with status %s: %w", entry.ID, entry.Status, ErrInvalidStateTransition)
	}

	accts, err := g.fetchLineAccounts(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err := g.applyLines(ctx, entry, accts, -1); err != nil {
		return nil, err
	}
	if err := g.reconcile(ctx, entry, accts, -1); err != nil {
		return nil, err
	}

	entry.Status = model.StatusCancelled
	if err := g.store.SaveJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("saving reversed entry", err)
	}
	return entry, nil
}

// Cancel soft-cancels a draft entry without touching any balance. Posted
// entries must go through Reverse instead.
func (g *Engine) Cancel(ctx context.Context, entryID string) (*model.JournalEntry, error) {
	entry, err := g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lock := g.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a concurrent Post may have won the race, and
	// writing cancelled over posted would strand its balance deltas.
	entry, err = g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != model.StatusDraft {
		return nil, fmt.Errorf("cancel entry %s with status %s: %w", entry.ID, entry.Status, ErrInvalidStateTransition)
	}

	entry.Status = model.StatusCancelled
	if err := g.store.SaveJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("saving cancelled entry", err)
	}
	return entry, nil
}

// UpdateDraftParams carries the metadata fields that may change while an
// entry is still a draft. Nil means leave unchanged.
type UpdateDraftParams struct {
	TransactionDate *time.Time
	Reference       *string
	Description     *string
}

// UpdateDraft mutates descriptive metadata on a draft entry. Lines and
// anything balance-affecting are immutable once the entry leaves draft.
func (g *Engine) UpdateDraft(ctx context.Context, entryID string, params UpdateDraftParams) (*model.JournalEntry, error) {
	entry, err := g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lock := g.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a stale draft save here would overwrite a
	// concurrent Post's status and let its deltas apply twice.
	entry, err = g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != model.StatusDraft {
		return nil, fmt.Errorf("update entry %s with status %s: %w", entry.ID, entry.Status, ErrInvalidStateTransition)
	}

	if params.TransactionDate != nil {
		entry.TransactionDate = *params.TransactionDate
	}
	if params.Reference != nil {
		entry.Reference = *params.Reference
	}
	if params.Description != nil {
		entry.Description = *params.Description
	}

	if verrs := ValidateEntry(entry); len(verrs) > 0 {
		return nil, validationErr(verrs)
	}
	if err := g.store.SaveJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("saving draft entry", err)
	}
	return entry, nil
}

// SetActualCategory records a user's category correction on an entry. The
// field is classifier feedback, not accounting data, so any status accepts it.
func (g *Engine) SetActualCategory(ctx context.Context, entryID, category string) (*model.JournalEntry, error) {
	entry, err := g.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	entry.ActualCategory = category
	if err := g.store.SaveJournalEntry(ctx, entry); err != nil {
		return nil, storageErr("saving entry correction", err)
	}
	return entry, nil
}

// Entry returns an entry by ID.
func (g *Engine) Entry(ctx context.Context, entryID string) (*model.JournalEntry, error) {
	return g.fetchEntry(ctx, entryID)
}

func (g *Engine) fetchEntry(ctx context.Context, entryID string) (*model.JournalEntry, error) {
	entry, err := g.store.GetJournalEntry(ctx, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("journal entry %s: %w", entryID, store.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("loading journal entry", err)
	}
	return entry, nil
}

// fetchLineAccounts resolves every account referenced by the entry's lines
// up front. Missing accounts fail here, before any mutation.
func (g *Engine) fetchLineAccounts(ctx context.Context, entry *model.JournalEntry) (map[string]*model.Account, error) {
	accts := make(map[string]*model.Account)
	for _, l := range entry.Lines {
		if _, ok := accts[l.AccountCode]; ok {
			continue
		}
		a, err := g.store.GetAccount(ctx, entry.UserID, l.AccountCode)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("entry %s references account %s: %w", entry.ID, l.AccountCode, ErrAccountNotFound)
		}
		if err != nil {
			return nil, storageErr("loading account", err)
		}
		accts[l.AccountCode] = a
	}
	return accts, nil
}

// applyLines applies the canonical polarity-aware balance rule to every
// line. sign is +1 for post, -1 for reverse.
func (g *Engine) applyLines(ctx context.Context, entry *model.JournalEntry, accts map[string]*model.Account, sign int64) error {
	mult := decimal.NewFromInt(sign)
	for _, l := range entry.Lines {
		a := accts[l.AccountCode]
		a.ApplyLine(l.Debit.Mul(mult), l.Credit.Mul(mult))
	}
	for _, a := range accts {
		if err := g.store.SaveAccount(ctx, a); err != nil {
			return storageErr("saving account balance", err)
		}
	}
	return nil
}
