package http

import (
	"net/http"
	"strings"
)

type alertResponse struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// handleEvaluateAlerts runs the alert rules synchronously. Email delivery is
// opt-in via ?email=true and degrades to email_sent=false on failure.
func (s *Server) handleEvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	sendEmail := strings.EqualFold(r.URL.Query().Get("email"), "true")

	result, err := s.alerts.Evaluate(r.Context(), user, sendEmail)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]alertResponse, 0, len(result.Alerts))
	for _, a := range result.Alerts {
		out = append(out, alertResponse{Kind: a.Kind, Message: a.Message, Severity: a.Severity})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"alerts":     out,
		"email_sent": result.EmailSent,
	})
}
