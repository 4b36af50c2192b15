// Package mapping turns a classifier's free-text category into a concrete
// debit/credit account pair for a user, seeding missing accounts from the
// default chart.
package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// Uncategorized is the built-in fallback category. It always resolves:
// unknown income maps to Sales Revenue, unknown expenses to Uncategorized
// Expense.
const Uncategorized = "uncategorized"

// TableVersion identifies the built-in mapping table revision.
const TableVersion = 1

// Pair holds the account code for each transaction direction. An empty
// side means the category has no mapping for that direction.
type Pair struct {
	Income  string `yaml:"income,omitempty"`
	Expense string `yaml:"expense,omitempty"`
}

// ForDirection returns the code for a direction, empty if unmapped.
func (p Pair) ForDirection(d model.Direction) string {
	if d == model.DirectionIncome {
		return p.Income
	}
	return p.Expense
}

// Table is a closed category-to-account-pair mapping. Lookups try the
// normalized category, then the raw string, then Uncategorized.
type Table struct {
	Version int
	pairs   map[string]Pair
}

// DefaultTable returns the built-in mapping table.
func DefaultTable() *Table {
	return &Table{
		Version: TableVersion,
		pairs: map[string]Pair{
			"cash_bank": {Income: model.CodeCashBank, Expense: model.CodeCashBank},

			"utilities":       {Expense: "501"},
			"office_supplies": {Expense: "502"},
			"salary_expense":  {Expense: "503"},
			"rent_expense":    {Expense: "504"},
			"transportation":  {Expense: "505"},

			"sales_revenue":   {Income: model.CodeSalesRevenue},
			"service_revenue": {Income: "402"},

			"bank_loan":        {Income: "201", Expense: "201"},
			"accounts_payable": {Income: "202", Expense: "202"},

			Uncategorized: {Income: model.CodeSalesRevenue, Expense: model.CodeUncategorizedExpense},
		},
	}
}

// tableFile is the YAML shape of a mapping override file.
type tableFile struct {
	Version    int             `yaml:"version"`
	Categories map[string]Pair `yaml:"categories"`
}

// LoadTable reads a YAML override file and merges it over the built-in
// table. Overrides win per category.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing mapping table: %w", err)
	}

	t := DefaultTable()
	if f.Version != 0 {
		t.Version = f.Version
	}
	for cat, pair := range f.Categories {
		t.pairs[Normalize(cat)] = pair
	}
	return t, nil
}

// Lookup resolves a raw category to its account pair. The fallback chain
// never fails: normalized form, then the raw string, then Uncategorized.
func (t *Table) Lookup(category string) Pair {
	if p, ok := t.pairs[Normalize(category)]; ok {
		return p
	}
	if p, ok := t.pairs[category]; ok {
		return p
	}
	return t.pairs[Uncategorized]
}

// Categories returns the known category keys, for classifier seeding.
func (t *Table) Categories() []string {
	out := make([]string, 0, len(t.pairs))
	for c := range t.pairs {
		out = append(out, c)
	}
	return out
}

// Normalize lowercases a category label, collapses whitespace runs to a
// single underscore, and strips everything outside [a-z0-9_].
func Normalize(category string) string {
	var b strings.Builder
	b.Grow(len(category))

	inSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(category)) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inSpace = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if inSpace {
				b.WriteByte('_')
				inSpace = false
			}
			b.WriteRune(r)
		default:
			// dropped
		}
	}
	return b.String()
}
