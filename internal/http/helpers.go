package http

import (
	"github.com/shopspring/decimal"

	"budget/internal/core"
)

type summaryView struct {
	Count           int
	Balance         string
	BalanceNegative bool
	Income          string
	Expense         string
	Breakdowns      []breakdownView
	Version         uint64
}

type breakdownView struct {
	Title string
	Kind  string
	Rows  []categoryRow
}

type categoryRow struct {
	Name   string
	Amount string
	Width  int
}

type transactionRow struct {
	ID          string
	Description string
	Category    string
	Date        string
	Type        string
	Amount      string
	Income      bool
}

type formView struct {
	Editing    bool
	ID         string
	Action     string
	Values     formValues
	Categories []string
	Errors     FieldErrors
}

func newSummaryView(s core.Summary, version uint64) summaryView {
	return summaryView{
		Count:           s.Count,
		Balance:         core.FormatCurrency(s.Balance),
		BalanceNegative: s.Balance.IsNegative(),
		Income:          core.FormatCurrency(s.Income),
		Expense:         core.FormatCurrency(s.Expense),
		Breakdowns: []breakdownView{
			{Title: "Expenses by Category", Kind: "expense", Rows: categoryRows(s.ExpenseByCategory)},
			{Title: "Income by Category", Kind: "income", Rows: categoryRows(s.IncomeByCategory)},
		},
		Version: version,
	}
}

// categoryRows scales each bar to the largest category. Non-zero bars are
// at least 2% wide so they stay visible.
func categoryRows(list []core.CategoryAmount) []categoryRow {
	maxAmount := decimal.Zero
	for _, c := range list {
		if c.Amount.GreaterThan(maxAmount) {
			maxAmount = c.Amount
		}
	}
	rows := make([]categoryRow, 0, len(list))
	for _, c := range list {
		width := 0
		if maxAmount.IsPositive() && c.Amount.IsPositive() {
			width = int(c.Amount.Mul(decimal.NewFromInt(100)).Div(maxAmount).Round(0).IntPart())
			width = min(max(width, 2), 100)
		}
		rows = append(rows, categoryRow{Name: c.Name, Amount: core.FormatCurrency(c.Amount), Width: width})
	}
	return rows
}

func transactionRows(list []core.Transaction) []transactionRow {
	rows := make([]transactionRow, 0, len(list))
	for _, t := range list {
		rows = append(rows, transactionRow{
			ID:          t.ID,
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date,
			Type:        t.Type.String(),
			Amount:      formatSigned(t),
			Income:      t.Type == core.Income,
		})
	}
	return rows
}

// formatSigned renders the amount with the sign it adds to the balance,
// e.g. "+$5,000.00" or "-$150.00".
func formatSigned(t core.Transaction) string {
	if t.Type == core.Income {
		return "+" + core.FormatCurrency(t.Amount)
	}
	return "-" + core.FormatCurrency(t.Amount)
}

func newFormView(values formValues, errs FieldErrors) formView {
	typ, err := core.ParseTransactionType(values.Type)
	if err != nil {
		typ = core.Expense
		values.Type = string(core.Expense)
	}
	return formView{
		Action:     "/transactions",
		Values:     values,
		Categories: typ.Categories(),
		Errors:     errs,
	}
}

func editFormView(t core.Transaction, errs FieldErrors) formView {
	v := newFormView(formValues{
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Type:        t.Type.String(),
		Category:    t.Category,
		Date:        t.Date,
	}, errs)
	return v.forEdit(t.ID)
}

// forEdit switches the form to edit mode for the transaction id.
func (v formView) forEdit(id string) formView {
	v.Editing = true
	v.ID = id
	v.Action = "/transactions/" + id
	return v
}
