package http

import (
	"bytes"
	"errors"
	"net/http"

	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/notify"
)

// handleCreateTransaction adds a transaction from the form. On success the
// response carries a fresh form plus the store's message as a toast.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	fields, values, err := parseTransactionForm(r)
	if err != nil {
		s.rejectForm(w, r, newFormView(values, formErrors(err)))
		return
	}

	ctx, toasts := notify.WithToasts(r.Context())
	snap := s.store.Add(ctx, fields)

	s.writeChange(w, r, snap.Version(), messageOr(toasts, ledger.MsgAdded), s.blankForm(string(fields.Type)))
}

// handleUpdateTransaction replaces every field of the transaction named in
// the path. An unknown id leaves the store unchanged and still reports
// success.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	fields, values, err := parseTransactionForm(r)
	if err != nil {
		s.rejectForm(w, r, newFormView(values, formErrors(err)).forEdit(id))
		return
	}

	ctx, toasts := notify.WithToasts(r.Context())
	snap := s.store.Edit(ctx, core.Transaction{ID: id, Fields: fields})

	s.writeChange(w, r, snap.Version(), messageOr(toasts, ledger.MsgUpdated), s.blankForm(string(core.Expense)))
}

// handleDeleteTransaction removes a transaction. The empty body lets an
// hx-swap="outerHTML" on the row drop it right away.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, toasts := notify.WithToasts(r.Context())
	snap := s.store.Delete(ctx, r.PathValue("id"))

	NewHTMXResponse().
		TriggerSuccessNotification(messageOr(toasts, ledger.MsgDeleted)).
		TriggerTransactionsChanged(snap.Version()).
		Write(w)
}

func (s *Server) writeChange(w http.ResponseWriter, r *http.Request, version uint64, message string, form formView) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "form", form); err != nil {
		s.logger.ErrorContext(r.Context(), "Form template execution failed", "error", err)
	}
	NewHTMXResponse().
		TriggerSuccessNotification(message).
		TriggerFormReset().
		TriggerTransactionsChanged(version).
		BodyHTML(buf.String()).
		Write(w)
}

// rejectForm re-renders the submitted form with its errors. htmx swaps the
// 422 body because app.js allows it.
func (s *Server) rejectForm(w http.ResponseWriter, r *http.Request, v formView) {
	s.logger.DebugContext(r.Context(), "Transaction form rejected", "errors", v.Errors.Error())
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "form", v); err != nil {
		s.logger.ErrorContext(r.Context(), "Form template execution failed", "error", err)
		BadRequestError(v.Errors.Error()).Write(w)
		return
	}
	NewHTMXResponse().
		Status(http.StatusUnprocessableEntity).
		TriggerErrorNotification("Please fix the highlighted fields").
		BodyHTML(buf.String()).
		Write(w)
}

func formErrors(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return FieldErrors{"form": "Invalid request format"}
}

// messageOr returns the message the store emitted for this request, or
// fallback when no toast was collected.
func messageOr(t *notify.Toasts, fallback string) string {
	if msg := t.Last(); msg != "" {
		return msg
	}
	return fallback
}
