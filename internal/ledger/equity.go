package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

// reconcile keeps the two derived equity accounts consistent after an
// entry's lines were applied. sign is +1 for post, -1 for reverse; the net
// effect is always computed from the entry's own lines, never re-derived
// from current balances, so post/reverse round-trips cancel exactly.
func (g *Engine) reconcile(ctx context.Context, entry *model.JournalEntry, accts map[string]*model.Account, sign int64) error {
	if err := g.updateRetainedEarnings(ctx, entry, accts, sign); err != nil {
		return err
	}
	return g.plugOwnerEquity(ctx, entry.UserID)
}

// updateRetainedEarnings adds the entry's net effect (revenue credits minus
// expense debits) to the Retained Earnings account, creating it on first use.
func (g *Engine) updateRetainedEarnings(ctx context.Context, entry *model.JournalEntry, accts map[string]*model.Account, sign int64) error {
	netEffect := decimal.Zero
	for _, l := range entry.Lines {
		a := accts[l.AccountCode]
		switch a.Type {
		case model.AccountTypeRevenue:
			netEffect = netEffect.Add(l.Credit)
		case model.AccountTypeExpense:
			netEffect = netEffect.Sub(l.Debit)
		}
	}
	if netEffect.IsZero() {
		return nil
	}

	re, err := g.ensureEquityAccount(ctx, entry.UserID, model.CodeRetainedEarnings, "Retained Earnings")
	if err != nil {
		return err
	}
	re.Balance = re.Balance.Add(netEffect.Mul(decimal.NewFromInt(sign)))
	if err := g.store.SaveAccount(ctx, re); err != nil {
		return storageErr("saving retained earnings", err)
	}
	return nil
}

// plugOwnerEquity recomputes Owner Equity as the balancing figure
// assets - liabilities - other equity over the user's active accounts, so
// the accounting equation holds by construction after every post/reverse.
func (g *Engine) plugOwnerEquity(ctx context.Context, userID string) error {
	oe, err := g.ensureEquityAccount(ctx, userID, model.CodeOwnerEquity, "Owner Equity")
	if err != nil {
		return err
	}

	accounts, err := g.store.FindAccounts(ctx, userID, store.AccountFilter{ActiveOnly: true})
	if err != nil {
		return storageErr("listing accounts", err)
	}

	assets := decimal.Zero
	liabilities := decimal.Zero
	otherEquity := decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case model.AccountTypeAsset:
			assets = assets.Add(a.Balance)
		case model.AccountTypeLiability:
			liabilities = liabilities.Add(a.Balance)
		case model.AccountTypeEquity:
			if a.Code != model.CodeOwnerEquity {
				otherEquity = otherEquity.Add(a.Balance)
			}
		}
	}

	oe.Balance = assets.Sub(liabilities).Sub(otherEquity)
	if err := g.store.SaveAccount(ctx, oe); err != nil {
		return storageErr("saving owner equity", err)
	}
	return nil
}

// ensureEquityAccount fetches a derived equity account, creating it with a
// zero balance if the user does not have it yet.
func (g *Engine) ensureEquityAccount(ctx context.Context, userID, code, name string) (*model.Account, error) {
	a, err := g.store.GetAccount(ctx, userID, code)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, storageErr("loading equity account", err)
	}

	a = &model.Account{
		UserID:        userID,
		Code:          code,
		Name:          name,
		Type:          model.AccountTypeEquity,
		NormalBalance: model.NormalCredit,
		Balance:       decimal.Zero,
		IsActive:      true,
	}
	if err := g.store.SaveAccount(ctx, a); err != nil {
		return nil, storageErr("creating equity account", err)
	}
	return a, nil
}
