package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibooks-dev/minibooks/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Office Supplies", "office_supplies"},
		{"  office   supplies  ", "office_supplies"},
		{"OFFICE\tSUPPLIES", "office_supplies"},
		{"office-supplies!", "officesupplies"},
		{"salary_expense", "salary_expense"},
		{"Café & Snacks", "caf_snacks"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "input %q", c.in)
	}
}

func TestLookup_Known(t *testing.T) {
	table := DefaultTable()

	p := table.Lookup("Office Supplies")
	assert.Equal(t, "502", p.Expense)
	assert.Empty(t, p.Income)

	p = table.Lookup("sales_revenue")
	assert.Equal(t, model.CodeSalesRevenue, p.Income)
}

func TestLookup_FallsBackToUncategorized(t *testing.T) {
	table := DefaultTable()

	p := table.Lookup("totally_unknown_category")
	assert.Equal(t, model.CodeSalesRevenue, p.Income)
	assert.Equal(t, model.CodeUncategorizedExpense, p.Expense)
}

func TestPair_ForDirection(t *testing.T) {
	p := Pair{Income: "401", Expense: "506"}
	assert.Equal(t, "401", p.ForDirection(model.DirectionIncome))
	assert.Equal(t, "506", p.ForDirection(model.DirectionExpense))

	empty := Pair{Expense: "501"}
	assert.Empty(t, empty.ForDirection(model.DirectionIncome))
}

func TestLoadTable_MergesOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	content := `version: 2
categories:
  Coffee Shops:
    expense: "505"
  utilities:
    expense: "599"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Version)

	// New category, keyed by its normalized form.
	assert.Equal(t, "505", table.Lookup("coffee shops").Expense)
	// Override wins over the built-in mapping.
	assert.Equal(t, "599", table.Lookup("utilities").Expense)
	// Untouched defaults survive the merge.
	assert.Equal(t, "504", table.Lookup("rent_expense").Expense)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTable_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [not a map"), 0o644))

	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestCategories_IncludesUncategorized(t *testing.T) {
	assert.Contains(t, DefaultTable().Categories(), Uncategorized)
}
