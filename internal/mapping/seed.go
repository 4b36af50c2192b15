package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// DefaultChart returns the seed chart of accounts every mapping table code
// resolves into. Balances start at zero; UserID is filled by the caller.
func DefaultChart() []model.Account {
	defs := []struct {
		code string
		name string
		typ  model.AccountType
	}{
		{model.CodeCashBank, "Cash and Bank", model.AccountTypeAsset},
		{"102", "Accounts Receivable", model.AccountTypeAsset},

		{"201", "Bank Loan", model.AccountTypeLiability},
		{"202", "Accounts Payable", model.AccountTypeLiability},

		{model.CodeOwnerEquity, "Owner Equity", model.AccountTypeEquity},
		{model.CodeRetainedEarnings, "Retained Earnings", model.AccountTypeEquity},

		{model.CodeSalesRevenue, "Sales Revenue", model.AccountTypeRevenue},
		{"402", "Service Revenue", model.AccountTypeRevenue},

		{"501", "Utilities Expense", model.AccountTypeExpense},
		{"502", "Office Supplies Expense", model.AccountTypeExpense},
		{"503", "Salary Expense", model.AccountTypeExpense},
		{"504", "Rent Expense", model.AccountTypeExpense},
		{"505", "Transportation Expense", model.AccountTypeExpense},
		{model.CodeUncategorizedExpense, "Uncategorized Expense", model.AccountTypeExpense},
	}

	accounts := make([]model.Account, 0, len(defs))
	for _, d := range defs {
		accounts = append(accounts, model.Account{
			Code:          d.code,
			Name:          d.name,
			Type:          d.typ,
			NormalBalance: model.NormalBalanceFor(d.typ),
			Balance:       decimal.Zero,
			IsActive:      true,
		})
	}
	return accounts
}

// seedDefinition returns the seed account for a code, if the default chart
// has one.
func seedDefinition(code string) (model.Account, bool) {
	for _, a := range DefaultChart() {
		if a.Code == code {
			return a, true
		}
	}
	return model.Account{}, false
}
