package classify

import "github.com/minibooks-dev/minibooks/internal/model"

// DefaultTrainingSet returns the built-in seed samples covering every
// category in the default mapping table.
func DefaultTrainingSet() []Sample {
	return []Sample{
		// Assets
		{Text: "cash deposit to bank", Direction: model.DirectionIncome, Category: "cash_bank"},
		{Text: "incoming wire transfer", Direction: model.DirectionIncome, Category: "cash_bank"},
		{Text: "payment received", Direction: model.DirectionIncome, Category: "cash_bank"},
		{Text: "bank deposit", Direction: model.DirectionIncome, Category: "cash_bank"},

		// Expenses
		{Text: "electricity bill payment", Direction: model.DirectionExpense, Category: "utilities"},
		{Text: "water utility bill", Direction: model.DirectionExpense, Category: "utilities"},
		{Text: "internet subscription invoice", Direction: model.DirectionExpense, Category: "utilities"},
		{Text: "phone credit top up", Direction: model.DirectionExpense, Category: "utilities"},

		{Text: "stationery purchase", Direction: model.DirectionExpense, Category: "office_supplies"},
		{Text: "printer paper order", Direction: model.DirectionExpense, Category: "office_supplies"},
		{Text: "bought a printer", Direction: model.DirectionExpense, Category: "office_supplies"},

		{Text: "employee salary payout", Direction: model.DirectionExpense, Category: "salary_expense"},
		{Text: "staff wages", Direction: model.DirectionExpense, Category: "salary_expense"},
		{Text: "employee bonus payment", Direction: model.DirectionExpense, Category: "salary_expense"},

		{Text: "office rent payment", Direction: model.DirectionExpense, Category: "rent_expense"},
		{Text: "monthly lease payment", Direction: model.DirectionExpense, Category: "rent_expense"},

		{Text: "transportation costs", Direction: model.DirectionExpense, Category: "transportation"},
		{Text: "fuel for delivery van", Direction: model.DirectionExpense, Category: "transportation"},
		{Text: "parking fees", Direction: model.DirectionExpense, Category: "transportation"},

		// Revenues
		{Text: "product sales", Direction: model.DirectionIncome, Category: "sales_revenue"},
		{Text: "retail sales income", Direction: model.DirectionIncome, Category: "sales_revenue"},
		{Text: "customer invoice paid", Direction: model.DirectionIncome, Category: "sales_revenue"},

		{Text: "consulting service income", Direction: model.DirectionIncome, Category: "service_revenue"},
		{Text: "consultant fee received", Direction: model.DirectionIncome, Category: "service_revenue"},

		// Liabilities
		{Text: "bank loan disbursement", Direction: model.DirectionIncome, Category: "bank_loan"},
		{Text: "supplier invoice on credit", Direction: model.DirectionExpense, Category: "accounts_payable"},
	}
}
