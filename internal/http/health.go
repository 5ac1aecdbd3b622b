package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	storage     Pinger
	storageName string
	quran       QuranReference
	version     string
}

func NewHealthController(storage Pinger, storageName string, ref QuranReference, version string) *HealthController {
	return &HealthController{
		storage:     storage,
		storageName: storageName,
		quran:       ref,
		version:     version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			checks["storage"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}
	if h.storageName != "" {
		checks["storage_backend"] = h.storageName
	}

	if h.quran == nil || len(h.quran.Surahs()) == 0 {
		checks["quran"] = "no data loaded"
		status = "unhealthy"
	} else {
		checks["quran"] = "ok"
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}
