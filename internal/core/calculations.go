package core

import "github.com/shopspring/decimal"

// Balance sums income amounts and subtracts expense amounts.
func Balance(list []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range list {
		total = total.Add(t.Signed())
	}
	return total
}

// TotalIncome sums the amounts of income transactions.
func TotalIncome(list []Transaction) decimal.Decimal {
	return sumOf(list, Income)
}

// TotalExpense sums the amounts of expense transactions.
func TotalExpense(list []Transaction) decimal.Decimal {
	return sumOf(list, Expense)
}

func sumOf(list []Transaction, typ TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range list {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryTotals groups transactions of the given type by category.
// Groups are returned in the order each category first appears in list.
func CategoryTotals(list []Transaction, typ TransactionType) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, t := range list {
		if t.Type != typ {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			index[t.Category] = len(out)
			out = append(out, CategoryAmount{Name: t.Category, Amount: t.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}
