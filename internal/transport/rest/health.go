package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// modelChecker probes the text generation backend.
type modelChecker interface {
	Check(ctx context.Context) provider.HealthStatus
}

const probeTimeout = 3 * time.Second

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	model   modelChecker
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the service
// runs without a database.
func NewHealthHandler(db dbPinger, model modelChecker, version string) *HealthHandler {
	return &HealthHandler{db: db, model: model, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LLMHealthResponse is the JSON response for /api/llm/health.
type LLMHealthResponse struct {
	Status  string   `json:"status"`
	Service string   `json:"service"`
	Models  []string `json:"models,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 503 while the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: database and model backend with latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.db != nil {
		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
		}
	}

	start := time.Now()
	st := h.model.Check(ctx)
	latency := time.Since(start)

	if st.Healthy {
		components["llm"] = CompStatus{Status: "ok", Latency: latency.String()}
	} else {
		components["llm"] = CompStatus{Status: "down", Error: st.Err}
		overallStatus = "down"
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// LLM handles GET /api/llm/health: 200 when the model backend answers,
// 503 otherwise.
func (h *HealthHandler) LLM(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	st := h.model.Check(ctx)
	if !st.Healthy {
		writeJSON(w, http.StatusServiceUnavailable, LLMHealthResponse{
			Status:  "unhealthy",
			Service: st.Service,
			Message: st.Service + " is not available: " + st.Err,
		})
		return
	}

	writeJSON(w, http.StatusOK, LLMHealthResponse{
		Status:  "healthy",
		Service: st.Service,
		Models:  st.Models,
	})
}
