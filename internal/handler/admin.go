package handler

import (
	"net/http"
	"runtime"
	"time"

	"buildboard-api/internal/model"
	"buildboard-api/internal/repository"
	"buildboard-api/internal/service"
	"buildboard-api/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	repo        repository.SnapshotRepository
	board       *service.BoardService
	storageType string
	cacheType   string
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(repo repository.SnapshotRepository, board *service.BoardService, storageType, cacheType string) *AdminHandler {
	return &AdminHandler{
		repo:        repo,
		board:       board,
		storageType: storageType,
		cacheType:   cacheType,
		startTime:   time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["storage_type"] = h.storageType
	stats["cache_type"] = h.cacheType

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_inuse_mb": float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if h.board != nil {
		byStatus := make(map[model.Status]int)
		total := 0
		for _, req := range h.board.Requests() {
			byStatus[req.Status]++
			total++
		}
		stats["board"] = map[string]interface{}{
			"total":     total,
			"by_status": byStatus,
			"capacity":  h.board.Capacity(),
			"policy":    h.board.Policy(),
		}
	}

	if h.repo != nil {
		repoStats, err := h.repo.GetStats(r.Context())
		if err == nil {
			if repoStats == nil {
				repoStats = make(map[string]interface{})
			}
			repoStats["status"] = "connected"
			stats["storage"] = repoStats
		} else {
			stats["storage"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	} else {
		stats["storage"] = map[string]interface{}{"status": "not_configured"}
	}

	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}
