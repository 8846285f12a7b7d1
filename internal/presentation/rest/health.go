package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

// HealthHandler provides HTTP health check endpoints for the
// zombiescan service.
type HealthHandler struct {
	logger    *slog.Logger
	pool      *sqlitepool.Pool
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger *slog.Logger, pool *sqlitepool.Pool) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		pool:      pool,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks  map[string]string `json:"checks"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: "zombiescan",
		Uptime:  time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Readyz handles readiness probe requests. Readiness verifies the
// database pool still hands out connections.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": h.databaseCheck(r.Context()),
	}

	status := "ready"
	code := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status = "not ready"
			code = http.StatusServiceUnavailable
		}
	}

	resp := ReadinessResponse{
		Status:  status,
		Service: "zombiescan",
		Checks:  checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) databaseCheck(ctx context.Context) string {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	conn, err := h.pool.Take(checkCtx)
	if err != nil {
		h.logger.Warn("readiness database check failed", "error", err)
		return "unavailable"
	}
	h.pool.Put(conn)
	return "ok"
}
