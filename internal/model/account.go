package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// NormalBalance is the side of an entry that increases an account's balance.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// NormalBalanceFor returns the conventional normal balance for an account type.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// Well-known account codes from the default chart.
const (
	CodeCashBank             = "101"
	CodeOwnerEquity          = "301"
	CodeRetainedEarnings     = "302"
	CodeSalesRevenue         = "401"
	CodeUncategorizedExpense = "506"
)

// Account represents one ledger account owned by a single user. Codes are
// unique per user, not globally.
type Account struct {
	UserID        string
	Code          string
	Name          string
	Type          AccountType
	NormalBalance NormalBalance
	Balance       decimal.Decimal // magnitude relative to NormalBalance, never sign-flipped at rest
	Description   string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyLine adjusts the balance for one journal line using the account's
// polarity: a debit-normal account grows by debit-credit, a credit-normal
// account by credit-debit.
func (a *Account) ApplyLine(debit, credit decimal.Decimal) {
	if a.NormalBalance == NormalDebit {
		a.Balance = a.Balance.Add(debit).Sub(credit)
	} else {
		a.Balance = a.Balance.Add(credit).Sub(debit)
	}
}
