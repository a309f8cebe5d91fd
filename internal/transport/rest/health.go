package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/superstore/pkg/web"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves GET /healthz. It responds 200 when every check passes and 503 otherwise.
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler running checks with the given per-request timeout.
func NewHealthHandler(checks map[string]HealthCheck, timeout time.Duration, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: timeout,
		logger:  logger.With("component", "health"),
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "Health check failed", "check", name, "error", err)
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}
	web.RespondJSON(w, h.logger, status, map[string]any{"status": statusText(status), "checks": result})
}

func statusText(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "unavailable"
}
