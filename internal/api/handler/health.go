package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiranshivaraju/tenantportal/internal/api/response"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler returns an http.HandlerFunc for GET /api/v1/health.
// Every check is pinged; any failure reports the service degraded with 503.
func NewHealthHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := "ok"
		results := make(map[string]string, len(checks))
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				slog.Warn("health check failed", "check", name, "error", err)
				results[name] = "unavailable"
				status = "degraded"
				continue
			}
			results[name] = "ok"
		}

		body := map[string]any{"status": status, "checks": results}
		if status != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "One or more dependencies are unavailable", body)
			return
		}
		response.JSON(w, body)
	}
}
