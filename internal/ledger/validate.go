package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
)

// ValidateEntry enforces the structural invariants on a journal entry
// before it is persisted in any status. It returns every violation found.
func ValidateEntry(e *model.JournalEntry) []ValidationError {
	var errs []ValidationError

	if e.UserID == "" {
		errs = append(errs, ValidationError{EntryID: e.ID, Field: "user", Description: "user is required"})
	}
	if e.Description == "" {
		errs = append(errs, ValidationError{EntryID: e.ID, Field: "description", Description: "description is required"})
	}
	if len(e.Lines) < 2 {
		errs = append(errs, ValidationError{EntryID: e.ID, Field: "lines", Description: "an entry needs at least two lines"})
	}

	hundred := decimal.NewFromInt(100)
	for i, l := range e.Lines {
		field := fmt.Sprintf("lines[%d]", i)

		if l.AccountCode == "" {
			errs = append(errs, ValidationError{EntryID: e.ID, Field: field, Description: "account code is required"})
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			errs = append(errs, ValidationError{EntryID: e.ID, Field: field, Description: "amounts must not be negative"})
		}

		// Exactly one of debit/credit per line.
		hasDebit := !l.Debit.IsZero()
		hasCredit := !l.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{EntryID: e.ID, Field: field, Description: "line must have exactly one of debit or credit"})
		}

		// No more than 2 decimal places.
		if !l.Debit.Mul(hundred).Equal(l.Debit.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{EntryID: e.ID, Field: field, Description: fmt.Sprintf("debit %s has more than 2 decimal places", l.Debit)})
		}
		if !l.Credit.Mul(hundred).Equal(l.Credit.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{EntryID: e.ID, Field: field, Description: fmt.Sprintf("credit %s has more than 2 decimal places", l.Credit)})
		}
	}

	// Balance law: total debits equal total credits.
	if !e.IsBalanced() {
		errs = append(errs, ValidationError{
			EntryID:     e.ID,
			Field:       "lines",
			Description: fmt.Sprintf("debits (%s) != credits (%s)", e.TotalDebit().StringFixed(2), e.TotalCredit().StringFixed(2)),
		})
	}

	return errs
}

// validationErr folds violations into a single error that matches
// errors.As(&ValidationError{}).
func validationErr(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, ve := range errs {
		joined[i] = ve
	}
	return fmt.Errorf("validation failed: %w", errors.Join(joined...))
}
