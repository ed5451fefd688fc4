package http

import (
	"bytes"
	"net/http"

	"budget/internal/core"
	applog "budget/internal/log"
)

type dashboardView struct {
	Summary      summaryView
	Transactions []transactionRow
	Form         formView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	data := dashboardView{
		Summary:      newSummaryView(s.summaries.Summary(snap), snap.Version()),
		Transactions: transactionRows(snap.ByDateDesc()),
		Form:         s.blankForm(string(core.Expense)),
	}
	s.render(w, r, http.StatusOK, "index.html", data)
}

func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.render(w, r, http.StatusOK, "summary", newSummaryView(s.summaries.Summary(snap), snap.Version()))
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "transactions", transactionRows(s.store.Snapshot().ByDateDesc()))
}

// handleNewForm renders an empty add form. The type query parameter picks
// the category vocabulary and is used when the type selector changes.
func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := s.blankForm(q.Get("type"))
	if id := q.Get("id"); id != "" {
		// Type switch while editing keeps the form in edit mode.
		if _, ok := s.store.Snapshot().Find(id); ok {
			v.Values.Description = sanitizeInput(q.Get("description"))
			v.Values.Amount = q.Get("amount")
			v.Values.Date = q.Get("date")
			v = v.forEdit(id)
		}
	}
	s.render(w, r, http.StatusOK, "form", v)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, ok := s.store.Snapshot().Find(id)
	if !ok {
		NotFoundError("Transaction not found").Write(w)
		return
	}
	s.render(w, r, http.StatusOK, "form", editFormView(t, nil))
}

func (s *Server) blankForm(typ string) formView {
	return newFormView(formValues{Type: typ, Date: today(s.now())}, nil)
}

// render executes a template into a buffer first so a failure never leaves
// a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		applog.NewStructuredLogger(s.logger).LogError(r.Context(), "Template execution failed", err,
			applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": name})
		InternalServerError("Something went wrong while rendering the page").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(buf.String()).Write(w)
}
