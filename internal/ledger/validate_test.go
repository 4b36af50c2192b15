package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibooks-dev/minibooks/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validEntry() *model.JournalEntry {
	return &model.JournalEntry{
		ID:              "e1",
		UserID:          "alice",
		TransactionDate: date(2026, 3, 15),
		Description:     "office chairs",
		Status:          model.StatusDraft,
		Lines: []model.Line{
			{AccountCode: "502", Debit: dec("120.00")},
			{AccountCode: "101", Credit: dec("120.00")},
		},
	}
}

func fieldViolations(errs []ValidationError) map[string]bool {
	out := make(map[string]bool)
	for _, e := range errs {
		out[e.Field] = true
	}
	return out
}

func TestValidateEntry_Valid(t *testing.T) {
	assert.Empty(t, ValidateEntry(validEntry()))
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	e := validEntry()
	e.Lines[1].Credit = dec("119.00")

	errs := ValidateEntry(e)
	require.Len(t, errs, 1)
	assert.Equal(t, "lines", errs[0].Field)
	assert.Contains(t, errs[0].Error(), "120.00")
	assert.Contains(t, errs[0].Error(), "119.00")
}

func TestValidateEntry_MissingFields(t *testing.T) {
	e := validEntry()
	e.UserID = ""
	e.Description = ""

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["user"])
	assert.True(t, v["description"])
}

func TestValidateEntry_TooFewLines(t *testing.T) {
	e := validEntry()
	e.Lines = e.Lines[:1]

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines"])
}

func TestValidateEntry_BothSidesSet(t *testing.T) {
	e := validEntry()
	e.Lines[0].Credit = dec("120.00")
	e.Lines[1].Debit = dec("120.00")

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines[0]"])
	assert.True(t, v["lines[1]"])
}

func TestValidateEntry_ZeroLine(t *testing.T) {
	e := validEntry()
	e.Lines = append(e.Lines, model.Line{AccountCode: "505"})

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines[2]"])
}

func TestValidateEntry_NegativeAmount(t *testing.T) {
	e := validEntry()
	e.Lines[0].Debit = dec("-120.00")
	e.Lines[1].Credit = dec("-120.00")

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines[0]"])
	assert.True(t, v["lines[1]"])
}

func TestValidateEntry_TooManyDecimalPlaces(t *testing.T) {
	e := validEntry()
	e.Lines[0].Debit = dec("120.001")
	e.Lines[1].Credit = dec("120.001")

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines[0]"])
	assert.True(t, v["lines[1]"])
}

func TestValidateEntry_MissingAccountCode(t *testing.T) {
	e := validEntry()
	e.Lines[0].AccountCode = ""

	v := fieldViolations(ValidateEntry(e))
	assert.True(t, v["lines[0]"])
}

func TestValidationErr_MatchesErrorsAs(t *testing.T) {
	err := validationErr(ValidateEntry(&model.JournalEntry{ID: "e1"}))
	require.Error(t, err)

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}
