package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		typ    core.TransactionType
		amount string
		want   string
	}{
		{core.Income, "5000", "+$5,000.00"},
		{core.Expense, "150", "-$150.00"},
		{core.Expense, "1234.5", "-$1,234.50"},
	}
	for _, tt := range tests {
		tx := core.Transaction{Fields: core.Fields{Type: tt.typ, Amount: decimal.RequireFromString(tt.amount)}}
		if got := formatSigned(tx); got != tt.want {
			t.Errorf("formatSigned(%s %s) = %q, want %q", tt.typ, tt.amount, got, tt.want)
		}
	}
}

func TestCategoryRows(t *testing.T) {
	rows := categoryRows([]core.CategoryAmount{
		{Name: "Housing", Amount: decimal.NewFromInt(1200)},
		{Name: "Food", Amount: decimal.NewFromInt(150)},
		{Name: "Tiny", Amount: decimal.NewFromInt(1)},
	})
	want := []int{100, 13, 2}
	for i, w := range want {
		if rows[i].Width != w {
			t.Errorf("row %s width = %d, want %d", rows[i].Name, rows[i].Width, w)
		}
	}
	if rows[0].Amount != "$1,200.00" {
		t.Errorf("amount = %q", rows[0].Amount)
	}
	if len(categoryRows(nil)) != 0 {
		t.Error("empty input should yield no rows")
	}
}

func TestParseTransactionForm(t *testing.T) {
	form := url.Values{
		"description": {"  Lunch\x00 "},
		"amount":      {"$1,234.567"},
		"category":    {"Food"},
		"date":        {"2024-05-06"},
	}
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, _, err := parseTransactionForm(req)
	if err != nil {
		t.Fatalf("parseTransactionForm: %v", err)
	}
	if f.Description != "Lunch" {
		t.Errorf("Description = %q", f.Description)
	}
	if f.Type != core.Expense {
		t.Errorf("Type defaults to expense, got %q", f.Type)
	}
	if !f.Amount.Equal(decimal.RequireFromString("1234.57")) {
		t.Errorf("Amount = %s", f.Amount)
	}
}

func TestParseTransactionFormReportsAllErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("type=income"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, values, err := parseTransactionForm(req)
	fe, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, field := range []string{"description", "amount", "category", "date"} {
		if fe[field] == "" {
			t.Errorf("missing error for %s", field)
		}
	}
	if values.Type != "income" {
		t.Errorf("submitted values should be kept, got %+v", values)
	}
}
