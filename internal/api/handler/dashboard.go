package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/kiranshivaraju/tenantportal/internal/api/middleware"
	"github.com/kiranshivaraju/tenantportal/internal/api/response"
)

const dashboardSettleTimeout = 10 * time.Second

// NewDashboardHandler returns an http.HandlerFunc for GET /dashboard. It
// waits for the session's template request to settle, then renders the
// page with the session's style tokens inlined.
func NewDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), dashboardSettleTimeout)
		defer cancel()
		if err := s.View().Wait(ctx); err != nil {
			slog.Warn("rendering dashboard before template settled", "session_id", s.ID(), "error", err)
		}

		var body bytes.Buffer
		if err := s.View().Render(&body); err != nil {
			slog.Error("rendering dashboard failed", "session_id", s.ID(), "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render dashboard", nil)
			return
		}

		title := "Enterprise Portal"
		if cfg := s.Tenant(); cfg != nil && cfg.Name != "" {
			title = cfg.Name
		}

		var page bytes.Buffer
		page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		page.WriteString(html.EscapeString(title))
		page.WriteString("</title>\n<style>\n")
		page.WriteString(s.Tokens().CSS())
		page.WriteString("</style>\n</head>\n<body>\n")
		page.Write(body.Bytes())
		page.WriteString("</body>\n</html>\n")

		response.Raw(w, http.StatusOK, "text/html; charset=utf-8", page.Bytes())
	}
}

// NewDashboardClickHandler returns an http.HandlerFunc for
// POST /api/v1/dashboard/click. It dispatches a click on the element
// carrying attr=value in the rendered dashboard. A click that signs the
// user out ends the session.
func NewDashboardClickHandler(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		var req struct {
			Attr  string `json:"attr"`
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Attr == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "attr is required", nil)
			return
		}

		s.View().Mount()
		before := len(s.Opened())
		handled := s.View().Click(req.Attr, req.Value)
		signedOut := !s.Auth().IsAuthenticated
		if signedOut {
			sessions.Delete(s.ID())
		}

		resp := map[string]any{
			"handled":   handled,
			"signedOut": signedOut,
		}
		if opened := s.Opened(); len(opened) > before {
			resp["opened"] = opened[len(opened)-1]
		}
		response.JSON(w, resp)
	}
}
