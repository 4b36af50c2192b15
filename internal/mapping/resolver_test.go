package mapping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibooks-dev/minibooks/internal/ledger"
	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

var decimalHundred = decimal.RequireFromString("100.00")

func newTestResolver() (*Resolver, *store.Memory) {
	st := store.NewMemory()
	return NewResolver(st, nil), st
}

func TestResolve_ExpenseDebitsTarget(t *testing.T) {
	r, _ := newTestResolver()

	pair, err := r.Resolve(context.Background(), "utilities", model.DirectionExpense, "alice")
	require.NoError(t, err)

	assert.Equal(t, "501", pair.Debit.Code)
	assert.Equal(t, model.CodeCashBank, pair.Credit.Code)
}

func TestResolve_IncomeCreditsTarget(t *testing.T) {
	r, _ := newTestResolver()

	pair, err := r.Resolve(context.Background(), "sales_revenue", model.DirectionIncome, "alice")
	require.NoError(t, err)

	assert.Equal(t, model.CodeCashBank, pair.Debit.Code)
	assert.Equal(t, model.CodeSalesRevenue, pair.Credit.Code)
}

func TestResolve_UnknownCategoryFallsBack(t *testing.T) {
	r, _ := newTestResolver()

	pair, err := r.Resolve(context.Background(), "totally_unknown_category", model.DirectionExpense, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.CodeUncategorizedExpense, pair.Debit.Code)

	pair, err = r.Resolve(context.Background(), "totally_unknown_category", model.DirectionIncome, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.CodeSalesRevenue, pair.Credit.Code)
}

func TestResolve_DirectionWithoutMapping(t *testing.T) {
	r, _ := newTestResolver()

	// utilities has no income side.
	_, err := r.Resolve(context.Background(), "utilities", model.DirectionIncome, "alice")
	assert.ErrorIs(t, err, ErrNoAccountMapping)
}

func TestResolve_AutoCreatesFromSeedChart(t *testing.T) {
	r, st := newTestResolver()

	_, err := st.GetAccount(context.Background(), "alice", "504")
	require.ErrorIs(t, err, store.ErrNotFound)

	pair, err := r.Resolve(context.Background(), "rent_expense", model.DirectionExpense, "alice")
	require.NoError(t, err)

	created, err := st.GetAccount(context.Background(), "alice", "504")
	require.NoError(t, err)
	assert.Equal(t, "Rent Expense", created.Name)
	assert.Equal(t, model.AccountTypeExpense, created.Type)
	assert.True(t, created.Balance.IsZero())
	assert.True(t, created.IsActive)
	assert.Equal(t, created.Code, pair.Debit.Code)
}

func TestResolve_NormalizesCategory(t *testing.T) {
	r, _ := newTestResolver()

	pair, err := r.Resolve(context.Background(), "  Rent Expense ", model.DirectionExpense, "alice")
	require.NoError(t, err)
	assert.Equal(t, "504", pair.Debit.Code)
}

func TestResolveManual_RequiresExistingAccount(t *testing.T) {
	r, _ := newTestResolver()

	_, err := r.ResolveManual(context.Background(), "501", model.DirectionExpense, "alice")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestResolveManual(t *testing.T) {
	r, _ := newTestResolver()
	require.NoError(t, r.EnsureDefaultAccounts(context.Background(), "alice"))

	pair, err := r.ResolveManual(context.Background(), "503", model.DirectionExpense, "alice")
	require.NoError(t, err)
	assert.Equal(t, "503", pair.Debit.Code)
	assert.Equal(t, model.CodeCashBank, pair.Credit.Code)

	pair, err = r.ResolveManual(context.Background(), "402", model.DirectionIncome, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.CodeCashBank, pair.Debit.Code)
	assert.Equal(t, "402", pair.Credit.Code)
}

func TestEnsureDefaultAccounts_Idempotent(t *testing.T) {
	r, st := newTestResolver()
	ctx := context.Background()

	require.NoError(t, r.EnsureDefaultAccounts(ctx, "alice"))

	// Mutate one balance, reseed, and check it survives.
	cash, err := st.GetAccount(ctx, "alice", model.CodeCashBank)
	require.NoError(t, err)
	cash.Balance = cash.Balance.Add(decimalHundred)
	require.NoError(t, st.SaveAccount(ctx, cash))

	require.NoError(t, r.EnsureDefaultAccounts(ctx, "alice"))

	after, err := st.GetAccount(ctx, "alice", model.CodeCashBank)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimalHundred))

	accounts, err := st.FindAccounts(ctx, "alice", store.AccountFilter{})
	require.NoError(t, err)
	assert.Len(t, accounts, len(DefaultChart()))
}

func TestResolve_UsersIsolated(t *testing.T) {
	r, st := newTestResolver()
	ctx := context.Background()

	_, err := r.Resolve(ctx, "utilities", model.DirectionExpense, "alice")
	require.NoError(t, err)

	_, err = st.GetAccount(ctx, "bob", "501")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
