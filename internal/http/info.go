package http

import (
	"context"
	"net/http"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/httputil"
	"github.com/redmonkez12/friend-app/internal/logging"
)

const healthPingTimeout = 2 * time.Second

// HealthResponse reports liveness and which store backs the API
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// StatusResponse is the plain liveness probe body
type StatusResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// APIInfoResponse describes the API
type APIInfoResponse struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Auth     string `json:"auth"`
	Database string `json:"database"`
}

type infoHandler struct {
	db     *bun.DB
	driver string
}

// Health pings the store
// @Summary      Health check
// @Description  Reports ok when the database answers a ping, degraded otherwise.
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *infoHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logging.FromContext(r.Context()).Error("database ping failed", "error", err.Error())
		httputil.RespondJSON(w, HealthResponse{Status: "degraded", Database: h.driver}, http.StatusServiceUnavailable)
		return
	}

	httputil.RespondJSON(w, HealthResponse{Status: "ok", Database: h.driver}, http.StatusOK)
}

// Status reports that the process is up
// @Summary      Service status
// @Tags         health
// @Produce      json
// @Success      200 {object} StatusResponse
// @Router       /status [get]
func (h *infoHandler) Status(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, StatusResponse{
		Status:    "online",
		Service:   "friend-api",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// APIInfo describes the API
// @Summary      API information
// @Tags         health
// @Produce      json
// @Success      200 {object} APIInfoResponse
// @Router       /api/v1 [get]
func (h *infoHandler) APIInfo(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, APIInfoResponse{
		Name:     "Friend App API",
		Version:  "1.0.0",
		Auth:     "Bearer token required",
		Database: h.driver,
	}, http.StatusOK)
}
