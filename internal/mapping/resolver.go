package mapping

import (
	"context"
	"errors"
	"fmt"

	"github.com/minibooks-dev/minibooks/internal/ledger"
	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

// ErrNoAccountMapping means the resolved category has no account code for
// the requested direction. The caller decides whether to retry with a
// manual override.
var ErrNoAccountMapping = errors.New("no account mapping")

// AccountPair is the result of resolution: which account to debit and
// which to credit.
type AccountPair struct {
	Debit  *model.Account
	Credit *model.Account
}

// Resolver maps predicted categories to live account records. It creates
// missing seed accounts with a zero balance but never mutates balances.
type Resolver struct {
	store store.Store
	table *Table
}

// NewResolver creates a Resolver over a store and a mapping table.
func NewResolver(st store.Store, table *Table) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{store: st, table: table}
}

// Resolve turns a predicted category plus transaction direction into a
// debit/credit account pair for the user. Cash/Bank is always on one side:
// income debits Cash and credits the resolved account, expense debits the
// resolved account and credits Cash. Missing accounts are auto-created
// from the seed chart, which makes first use self-healing.
func (r *Resolver) Resolve(ctx context.Context, category string, direction model.Direction, userID string) (AccountPair, error) {
	pair := r.table.Lookup(category)
	code := pair.ForDirection(direction)
	if code == "" {
		return AccountPair{}, fmt.Errorf("category %q has no %s side: %w", category, direction, ErrNoAccountMapping)
	}

	target, err := r.ensureAccount(ctx, userID, code)
	if err != nil {
		return AccountPair{}, err
	}
	cash, err := r.ensureAccount(ctx, userID, model.CodeCashBank)
	if err != nil {
		return AccountPair{}, err
	}

	if direction == model.DirectionIncome {
		return AccountPair{Debit: cash, Credit: target}, nil
	}
	return AccountPair{Debit: target, Credit: cash}, nil
}

// ResolveManual pairs an explicitly chosen account code with Cash/Bank.
// Unlike Resolve, the manual account must already exist.
func (r *Resolver) ResolveManual(ctx context.Context, code string, direction model.Direction, userID string) (AccountPair, error) {
	target, err := r.store.GetAccount(ctx, userID, code)
	if errors.Is(err, store.ErrNotFound) {
		return AccountPair{}, fmt.Errorf("manual account %s: %w", code, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return AccountPair{}, fmt.Errorf("loading manual account %s: %w", code, err)
	}

	cash, err := r.ensureAccount(ctx, userID, model.CodeCashBank)
	if err != nil {
		return AccountPair{}, err
	}

	if direction == model.DirectionIncome {
		return AccountPair{Debit: cash, Credit: target}, nil
	}
	return AccountPair{Debit: target, Credit: cash}, nil
}

// EnsureDefaultAccounts seeds the full default chart for a user.
// Idempotent: existing accounts are left untouched.
func (r *Resolver) EnsureDefaultAccounts(ctx context.Context, userID string) error {
	for _, seed := range DefaultChart() {
		_, err := r.store.GetAccount(ctx, userID, seed.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking account %s: %w", seed.Code, err)
		}
		seed.UserID = userID
		if err := r.store.SaveAccount(ctx, &seed); err != nil {
			return fmt.Errorf("seeding account %s: %w", seed.Code, err)
		}
	}
	return nil
}

// ensureAccount fetches an account, creating it from the seed chart when
// the user does not have it yet.
func (r *Resolver) ensureAccount(ctx context.Context, userID, code string) (*model.Account, error) {
	a, err := r.store.GetAccount(ctx, userID, code)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading account %s: %w", code, err)
	}

	seed, ok := seedDefinition(code)
	if !ok {
		return nil, fmt.Errorf("account %s has no seed definition: %w", code, ledger.ErrAccountNotFound)
	}
	seed.UserID = userID
	if err := r.store.SaveAccount(ctx, &seed); err != nil {
		return nil, fmt.Errorf("creating account %s: %w", code, err)
	}
	return &seed, nil
}
