package core

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func tx(id string, typ TransactionType, amount, category string) Transaction {
	return Transaction{ID: id, Fields: Fields{
		Description: id,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Category:    category,
		Date:        "2023-04-01",
	}}
}

func scenario() []Transaction {
	return []Transaction{
		tx("1", Income, "5000", "Salary"),
		tx("2", Expense, "1200", "Housing"),
		tx("3", Expense, "150", "Food"),
		tx("4", Income, "1000", "Freelance"),
	}
}

func TestTotalsScenario(t *testing.T) {
	list := scenario()
	if got := Balance(list); !got.Equal(decimal.NewFromInt(4650)) {
		t.Fatalf("Balance = %s, want 4650", got)
	}
	if got := TotalIncome(list); !got.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("TotalIncome = %s, want 6000", got)
	}
	if got := TotalExpense(list); !got.Equal(decimal.NewFromInt(1350)) {
		t.Fatalf("TotalExpense = %s, want 1350", got)
	}
}

func TestTotalsEmpty(t *testing.T) {
	for name, fn := range map[string]func([]Transaction) decimal.Decimal{
		"balance": Balance,
		"income":  TotalIncome,
		"expense": TotalExpense,
	} {
		if got := fn(nil); !got.IsZero() {
			t.Fatalf("%s of empty list = %s, want 0", name, got)
		}
	}
	if got := CategoryTotals(nil, Expense); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
}

func TestBalanceIsIncomeMinusExpense(t *testing.T) {
	lists := [][]Transaction{
		nil,
		scenario(),
		{tx("a", Expense, "0.10", "Food"), tx("b", Expense, "0.20", "Food")},
		{tx("a", Income, "0.10", "Gift"), tx("b", Expense, "99.99", "Debt"), tx("c", Income, "12.345", "Gift")},
	}
	for i, l := range lists {
		want := TotalIncome(l).Sub(TotalExpense(l))
		if got := Balance(l); !got.Equal(want) {
			t.Fatalf("case %d: Balance = %s, want %s", i, got, want)
		}
	}
}

func TestCategoryTotalsOrderAndSums(t *testing.T) {
	list := []Transaction{
		tx("1", Expense, "10", "Food"),
		tx("2", Income, "100", "Salary"),
		tx("3", Expense, "5", "Housing"),
		tx("4", Expense, "2.5", "Food"),
		tx("5", Expense, "1", "Debt"),
		tx("6", Income, "7", "Gift"),
	}

	got := CategoryTotals(list, Expense)
	names := []string{}
	for _, c := range got {
		names = append(names, c.Name)
	}
	if !reflect.DeepEqual(names, []string{"Food", "Housing", "Debt"}) {
		t.Fatalf("expected first-occurrence order, got %v", names)
	}
	if !got[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Food total = %s, want 12.5", got[0].Amount)
	}

	for _, typ := range []TransactionType{Income, Expense} {
		sum := decimal.Zero
		for _, c := range CategoryTotals(list, typ) {
			sum = sum.Add(c.Amount)
		}
		if want := sumOf(list, typ); !sum.Equal(want) {
			t.Fatalf("%s groups sum to %s, want %s", typ, sum, want)
		}
	}
}

func TestCategoryTotalsIsPure(t *testing.T) {
	list := scenario()
	before := append([]Transaction(nil), list...)
	first := CategoryTotals(list, Expense)
	second := CategoryTotals(list, Expense)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls differ: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(list, before) {
		t.Fatalf("input list was mutated")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(scenario())
	if s.Count != 4 {
		t.Fatalf("Count = %d", s.Count)
	}
	if FormatCurrency(s.Balance) != "$4,650.00" || FormatCurrency(s.Income) != "$6,000.00" || FormatCurrency(s.Expense) != "$1,350.00" {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if len(s.ExpenseByCategory) != 2 || s.ExpenseByCategory[0].Name != "Housing" {
		t.Fatalf("unexpected expense categories: %+v", s.ExpenseByCategory)
	}
	if len(s.IncomeByCategory) != 2 || s.IncomeByCategory[1].Name != "Freelance" {
		t.Fatalf("unexpected income categories: %+v", s.IncomeByCategory)
	}
}
