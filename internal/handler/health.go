package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"buildboard-api/internal/config"
	"buildboard-api/internal/repository"
	"buildboard-api/pkg/response"
)

// readyTimeout bounds the storage check behind /ready.
const readyTimeout = 2 * time.Second

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	app       config.AppConfig
	repo      repository.SnapshotRepository
	startTime time.Time
}

// New creates a new handler reporting app's name, version and environment.
// repo is checked by Ready and may be nil.
func New(app config.AppConfig, repo repository.SnapshotRepository) *Handler {
	return &Handler{app: app, repo: repo, startTime: time.Now()}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.app.Version,
	})
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{{Name: "api", Status: "ok"}}
	if h.repo != nil {
		checks = append(checks, h.storageCheck(r.Context()))
	}

	allReady := true
	for _, check := range checks {
		if check.Status != "ok" {
			allReady = false
			break
		}
	}

	status := http.StatusOK
	if !allReady {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

func (h *Handler) storageCheck(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if _, err := h.repo.GetStats(ctx); err != nil {
		return Check{Name: "storage", Status: "error", Error: err.Error()}
	}
	return Check{Name: "storage", Status: "ok"}
}

// StatusResponse is the compact status used by uptime monitors.
type StatusResponse struct {
	Service       string  `json:"service"`
	Version       string  `json:"version"`
	Environment   string  `json:"environment"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	MemoryMB      float64 `json:"memory_mb"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, StatusResponse{
		Service:       h.app.Name,
		Version:       h.app.Version,
		Environment:   h.app.Environment,
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		MemoryMB:      float64(int(memoryMB*100)) / 100,
	})
}
