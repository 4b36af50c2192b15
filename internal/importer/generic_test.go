package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibooks-dev/minibooks/internal/model"
)

func decimalStr(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGenericParse(t *testing.T) {
	input := `date,description,amount
2026-03-01,Electricity bill,-45.20
2026-03-02,Customer payment,300.00
`
	txns, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "Electricity bill", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(decimalStr("-45.20")))
	assert.Equal(t, model.DirectionExpense, txns[0].Direction())
	assert.Equal(t, "import_20260301_Electricit_-45.20", txns[0].Reference)

	assert.Equal(t, model.DirectionIncome, txns[1].Direction())
	assert.Equal(t, "import_20260302_Customerpa_300.00", txns[1].Reference)
}

func TestGenericParse_HeaderOnly(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestGenericParse_BadDate(t *testing.T) {
	input := "date,description,amount\n03/01/2026,thing,-1.00\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestGenericParse_BadAmount(t *testing.T) {
	input := "date,description,amount\n2026-03-01,thing,abc\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestGenericParse_WrongColumnCount(t *testing.T) {
	input := "date,description,amount\n2026-03-01,thing\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestMakeReference_Stable(t *testing.T) {
	input := `date,description,amount
2026-03-01,Same row,-1.00
`
	first, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	second, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, first[0].Reference, second[0].Reference)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"))
	assert.Nil(t, r.Get("unknown-bank"))
}
