package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalBalanceFor(t *testing.T) {
	assert.Equal(t, NormalDebit, NormalBalanceFor(AccountTypeAsset))
	assert.Equal(t, NormalDebit, NormalBalanceFor(AccountTypeExpense))
	assert.Equal(t, NormalCredit, NormalBalanceFor(AccountTypeLiability))
	assert.Equal(t, NormalCredit, NormalBalanceFor(AccountTypeEquity))
	assert.Equal(t, NormalCredit, NormalBalanceFor(AccountTypeRevenue))
}

func TestApplyLine_DebitNormal(t *testing.T) {
	a := Account{NormalBalance: NormalDebit, Balance: dec("50.00")}

	a.ApplyLine(dec("100.00"), decimal.Zero)
	assert.True(t, a.Balance.Equal(dec("150.00")))

	a.ApplyLine(decimal.Zero, dec("30.00"))
	assert.True(t, a.Balance.Equal(dec("120.00")))
}

func TestApplyLine_CreditNormal(t *testing.T) {
	a := Account{NormalBalance: NormalCredit, Balance: dec("50.00")}

	a.ApplyLine(decimal.Zero, dec("100.00"))
	assert.True(t, a.Balance.Equal(dec("150.00")))

	a.ApplyLine(dec("30.00"), decimal.Zero)
	assert.True(t, a.Balance.Equal(dec("120.00")))
}

func TestApplyLine_CanGoNegative(t *testing.T) {
	a := Account{NormalBalance: NormalDebit, Balance: dec("10.00")}
	a.ApplyLine(decimal.Zero, dec("25.00"))
	assert.True(t, a.Balance.Equal(dec("-15.00")))
}
