package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/notify"
)

type listResponse struct {
	Version      uint64             `json:"version"`
	Transactions []core.Transaction `json:"transactions"`
}

type summaryResponse struct {
	Version           uint64                `json:"version"`
	Count             int                   `json:"count"`
	Balance           decimal.Decimal       `json:"balance"`
	Income            decimal.Decimal       `json:"income"`
	Expense           decimal.Decimal       `json:"expense"`
	Formatted         map[string]string     `json:"formatted"`
	ExpenseByCategory []core.CategoryAmount `json:"expense_by_category"`
	IncomeByCategory  []core.CategoryAmount `json:"income_by_category"`
}

type mutationResponse struct {
	Message     string            `json:"message"`
	Version     uint64            `json:"version"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
}

type errorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields,omitempty"`
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	items := snap.Transactions()
	if items == nil {
		items = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, listResponse{Version: snap.Version(), Transactions: items})
}

func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	ctx, toasts := notify.WithToasts(r.Context())
	snap := s.store.Add(ctx, fields)

	// Add appends, so the new transaction is last.
	items := snap.Transactions()
	created := items[len(items)-1]
	writeJSON(w, http.StatusCreated, mutationResponse{
		Message:     messageOr(toasts, ledger.MsgAdded),
		Version:     snap.Version(),
		Transaction: &created,
	})
}

func (s *Server) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, err := decodeTransaction(r, id)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	ctx, toasts := notify.WithToasts(r.Context())
	snap := s.store.Edit(ctx, t)

	resp := mutationResponse{Message: messageOr(toasts, ledger.MsgUpdated), Version: snap.Version()}
	if t, ok := snap.Find(id); ok {
		resp.Transaction = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	sum := s.summaries.Summary(snap)
	writeJSON(w, http.StatusOK, summaryResponse{
		Version: snap.Version(),
		Count:   sum.Count,
		Balance: sum.Balance,
		Income:  sum.Income,
		Expense: sum.Expense,
		Formatted: map[string]string{
			"balance": core.FormatCurrency(sum.Balance),
			"income":  core.FormatCurrency(sum.Income),
			"expense": core.FormatCurrency(sum.Expense),
		},
		ExpenseByCategory: nonNil(sum.ExpenseByCategory),
		IncomeByCategory:  nonNil(sum.IncomeByCategory),
	})
}

func nonNil(list []core.CategoryAmount) []core.CategoryAmount {
	if list == nil {
		return []core.CategoryAmount{}
	}
	return list
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeFieldError(w http.ResponseWriter, err error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fe})
		return
	}
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
