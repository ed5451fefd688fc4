// Package http provides HTTP server and handler implementations.
//
// This file implements parsing and validation of transaction input coming
// from the HTMX form and the JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"budget/internal/core"
)

const maxBodyBytes = 1 << 20

// formValues mirrors the form inputs so a rejected submission can be
// rendered back unchanged.
type formValues struct {
	Description string
	Amount      string
	Type        string
	Category    string
	Date        string
}

// FieldErrors maps form input names to a message for the user.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, k := range []string{"form", "id", "description", "amount", "type", "category", "date"} {
		if msg, ok := e[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// fieldMessages turns the core validation errors into form messages.
var fieldMessages = map[error]struct{ field, message string }{
	core.ErrEmptyDescription:   {"description", "Description is required"},
	core.ErrDescriptionTooLong: {"description", "Description must be at most 200 characters"},
	core.ErrInvalidAmount:      {"amount", "Amount must be greater than 0"},
	core.ErrInvalidType:        {"type", "Type must be income or expense"},
	core.ErrEmptyCategory:      {"category", "Category is required"},
	core.ErrInvalidDate:        {"date", "Date is required (YYYY-MM-DD)"},
	core.ErrEmptyTransactionID: {"id", "Transaction id is required"},
}

func (e FieldErrors) add(err error) {
	for sentinel, fm := range fieldMessages {
		if errors.Is(err, sentinel) {
			if _, exists := e[fm.field]; !exists {
				e[fm.field] = fm.message
			}
			return
		}
	}
	e["form"] = err.Error()
}

// parseTransactionForm reads and validates the transaction form. Every
// invalid input is reported, not only the first one.
func parseTransactionForm(r *http.Request) (core.Fields, formValues, error) {
	if err := r.ParseForm(); err != nil {
		return core.Fields{}, formValues{}, fmt.Errorf("parse form: %w", err)
	}

	v := formValues{
		Description: sanitizeInput(r.PostForm.Get("description")),
		Amount:      strings.TrimSpace(r.PostForm.Get("amount")),
		Type:        strings.TrimSpace(r.PostForm.Get("type")),
		Category:    sanitizeInput(r.PostForm.Get("category")),
		Date:        strings.TrimSpace(r.PostForm.Get("date")),
	}
	if v.Type == "" {
		v.Type = string(core.Expense)
	}

	errs := FieldErrors{}
	f := core.Fields{
		Description: v.Description,
		Category:    v.Category,
		Date:        v.Date,
	}

	if v.Amount == "" {
		errs["amount"] = "Amount is required"
	} else if amount, err := core.ParseAmount(v.Amount); err != nil {
		errs.add(err)
	} else {
		f.Amount = amount
	}

	if typ, err := core.ParseTransactionType(v.Type); err != nil {
		errs.add(err)
	} else {
		f.Type = typ
	}

	for _, err := range []error{
		core.ValidateDescription(f.Description),
		core.ValidateCategory(f.Category),
		core.ValidateDate(f.Date),
	} {
		if err != nil {
			errs.add(err)
		}
	}

	if len(errs) > 0 {
		return core.Fields{}, v, errs
	}
	return f, v, nil
}

// decodeBody reads a JSON transaction body. An id in the body is accepted
// so a listed transaction can be sent back unchanged, but it is never used.
func decodeBody(r *http.Request) (core.Fields, error) {
	var body core.Transaction
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return core.Fields{}, fmt.Errorf("decode transaction: %w", err)
	}
	f := body.Fields
	f.Description = sanitizeInput(f.Description)
	f.Category = sanitizeInput(f.Category)
	f.Amount = f.Amount.Round(2)
	return f, nil
}

// decodeFields reads and validates the body of a new transaction.
func decodeFields(r *http.Request) (core.Fields, error) {
	f, err := decodeBody(r)
	if err != nil {
		return core.Fields{}, err
	}
	if err := f.Validate(); err != nil {
		return core.Fields{}, fieldError(err)
	}
	return f, nil
}

// decodeTransaction reads the replacement for transaction id. The path id
// always wins over one in the body.
func decodeTransaction(r *http.Request, id string) (core.Transaction, error) {
	f, err := decodeBody(r)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{ID: id, Fields: f}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fieldError(err)
	}
	return t, nil
}

func fieldError(err error) FieldErrors {
	errs := FieldErrors{}
	errs.add(err)
	return errs
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// today is the default date of a new transaction.
func today(now time.Time) string {
	return now.Format(core.DateLayout)
}
