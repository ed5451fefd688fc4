package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"value"`
}

// Summary bundles every figure the dashboard shows for one list of
// transactions.
type Summary struct {
	Count             int              `json:"count"`
	Balance           decimal.Decimal  `json:"balance"`
	Income            decimal.Decimal  `json:"income"`
	Expense           decimal.Decimal  `json:"expense"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
	IncomeByCategory  []CategoryAmount `json:"income_by_category"`
}

func Summarize(list []Transaction) Summary {
	return Summary{
		Count:             len(list),
		Balance:           Balance(list),
		Income:            TotalIncome(list),
		Expense:           TotalExpense(list),
		ExpenseByCategory: CategoryTotals(list, Expense),
		IncomeByCategory:  CategoryTotals(list, Income),
	}
}
