package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusPosted    EntryStatus = "posted"
	StatusCancelled EntryStatus = "cancelled"
)

// Line is one side of a journal entry. Exactly one of Debit/Credit is
// non-zero per line.
type Line struct {
	AccountCode string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Description string
}

// JournalEntry represents one balanced accounting transaction. Lines refer
// to accounts by code only; the accounts belong to the same user.
type JournalEntry struct {
	ID                string
	UserID            string
	TransactionDate   time.Time
	Reference         string
	Description       string
	Lines             []Line
	Status            EntryStatus
	PredictedCategory string
	Confidence        decimal.Decimal
	ActualCategory    string // user correction, feeds classifier training
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits across all lines.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}
