package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusCreated).
		Body([]byte("test")).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if w.Body.String() != "test" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "test")
	}
	if w.Header().Get("HX-Trigger") != "" {
		t.Errorf("HX-Trigger should be absent without triggers")
	}
}

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerTransactionsChanged(7).
		TriggerFormReset().
		TriggerSuccessNotification("Transaction added successfully").
		Write(w)

	trigger := w.Header().Get("HX-Trigger")
	for _, part := range []string{
		`"transactions:changed":{"version":7}`,
		`"form:reset"`,
		`"show-notification"`,
		`"message":"Transaction added successfully"`,
		`"type":"success"`,
		`"duration":3000`,
	} {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestHTMXResponseBuilder_CustomHeader(t *testing.T) {
	w := httptest.NewRecorder()
	NewHTMXResponse().Header("HX-Retarget", "#form").Write(w)
	if w.Header().Get("HX-Retarget") != "#form" {
		t.Errorf("HX-Retarget = %q", w.Header().Get("HX-Retarget"))
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *HTMXResponseBuilder
		code    int
	}{
		{"bad request", BadRequestError("bad"), http.StatusBadRequest},
		{"not found", NotFoundError("missing"), http.StatusNotFound},
		{"internal", InternalServerError("boom"), http.StatusInternalServerError},
		{"rate limited", TooManyRequestsError("slow down"), http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.code {
				t.Errorf("Status = %d, want %d", w.Code, tt.code)
			}
			if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
				t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
			}
			if !strings.Contains(w.Header().Get("HX-Trigger"), `"type":"error"`) {
				t.Errorf("missing error notification: %s", w.Header().Get("HX-Trigger"))
			}
		})
	}
}

func TestErrorResponse_EscapesHTML(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusBadRequest, `<script>alert("x")</script>`).Write(w)
	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("body not escaped: %s", w.Body.String())
	}
}
