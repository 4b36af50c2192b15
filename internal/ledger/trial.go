package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

// trialEpsilon is the tolerance for the balanced check.
var trialEpsilon = decimal.RequireFromString("0.01")

// TrialBalance is the per-user health summary of the ledger.
type TrialBalance struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
	Balanced    bool
}

// ComputeTrialBalance sums debit-normal against credit-normal balances over
// the user's active balance-sheet accounts. Revenue and expense activity is
// already folded into Retained Earnings by reconciliation, so including
// those accounts would count net income twice.
func (g *Engine) ComputeTrialBalance(ctx context.Context, userID string) (TrialBalance, error) {
	accounts, err := g.store.FindAccounts(ctx, userID, store.AccountFilter{ActiveOnly: true})
	if err != nil {
		return TrialBalance{}, storageErr("listing accounts", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case model.AccountTypeAsset, model.AccountTypeLiability, model.AccountTypeEquity:
		default:
			continue
		}
		if a.NormalBalance == model.NormalDebit {
			totalDebit = totalDebit.Add(a.Balance)
		} else {
			totalCredit = totalCredit.Add(a.Balance)
		}
	}

	diff := totalDebit.Sub(totalCredit).Abs()
	return TrialBalance{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  diff,
		Balanced:    diff.LessThanOrEqual(trialEpsilon),
	}, nil
}
