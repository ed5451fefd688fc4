package ledger

import (
	"github.com/shopspring/decimal"

	"budget/internal/core"
)

// DemoTransactions returns the sample data shown on a fresh dashboard.
func DemoTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Fields: core.Fields{Description: "Salary", Amount: decimal.NewFromInt(5000), Type: core.Income, Category: "Salary", Date: "2023-04-05"}},
		{ID: "2", Fields: core.Fields{Description: "Rent", Amount: decimal.NewFromInt(1200), Type: core.Expense, Category: "Housing", Date: "2023-04-03"}},
		{ID: "3", Fields: core.Fields{Description: "Groceries", Amount: decimal.NewFromInt(150), Type: core.Expense, Category: "Food", Date: "2023-04-04"}},
		{ID: "4", Fields: core.Fields{Description: "Freelance Work", Amount: decimal.NewFromInt(1000), Type: core.Income, Category: "Freelance", Date: "2023-04-02"}},
	}
}
