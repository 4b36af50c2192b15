package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the cash-flow direction of a simple transaction.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIncome, DirectionExpense:
		return Direction(s), nil
	}
	return "", fmt.Errorf("direction must be %q or %q, got %q", DirectionIncome, DirectionExpense, s)
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Reference   string
}

// Direction maps the amount sign to a transaction direction.
func (t BankTransaction) Direction() Direction {
	if t.Amount.IsNegative() {
		return DirectionExpense
	}
	return DirectionIncome
}
