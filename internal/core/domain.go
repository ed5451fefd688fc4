package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the ISO-8601 calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Fields holds every Transaction attribute except the identifier.
	Fields struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        string          `json:"date"` // YYYY-MM-DD
	}

	Transaction struct {
		ID string `json:"id"`
		Fields
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyTransactionID = errors.New("empty transaction id")
)

const maxDescriptionLength = 200

// minimumAmount is one cent.
var minimumAmount = decimal.New(1, -2)

var (
	expenseCategories = []string{
		"Food", "Housing", "Transportation", "Entertainment", "Utilities",
		"Healthcare", "Personal", "Education", "Debt", "Other",
	}
	incomeCategories = []string{"Salary", "Freelance", "Investments", "Gift", "Other"}
)

// ParseTransactionType returns the type named by s, or ErrInvalidType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string {
	return string(t)
}

// Categories returns the suggested category vocabulary for the type.
// The store does not enforce it.
func (t TransactionType) Categories() []string {
	switch t {
	case Income:
		return append([]string(nil), incomeCategories...)
	case Expense:
		return append([]string(nil), expenseCategories...)
	default:
		return nil
	}
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateDescription requires a non-blank description of at most 200
// characters.
func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(s) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateCategory requires a non-blank category. Any name is accepted.
func ValidateCategory(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ValidateAmount rejects amounts below one cent.
func ValidateAmount(d decimal.Decimal) error {
	if d.LessThan(minimumAmount) {
		return ErrInvalidAmount
	}
	return nil
}

// Validate applies the form rules. The ledger store never calls it; it is
// the caller's job to validate before handing fields to the store.
func (f Fields) Validate() error {
	if err := ValidateDescription(f.Description); err != nil {
		return err
	}
	if err := ValidateAmount(f.Amount); err != nil {
		return err
	}
	if !f.Type.Valid() {
		return ErrInvalidType
	}
	if err := ValidateCategory(f.Category); err != nil {
		return err
	}
	return ValidateDate(f.Date)
}

// Validate applies the form rules to a replacement transaction.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyTransactionID
	}
	return t.Fields.Validate()
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}
