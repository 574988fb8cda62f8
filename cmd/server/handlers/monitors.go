package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/monitor"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// MonitorsHandler exposes the deployment history.
type MonitorsHandler struct {
	store  monitor.Store
	logger logger.Logger
}

// NewMonitorsHandler creates a new monitors handler.
func NewMonitorsHandler(store monitor.Store, log logger.Logger) *MonitorsHandler {
	return &MonitorsHandler{store: store, logger: log}
}

// List handles GET /api/v1/monitors.
func (h *MonitorsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := parseIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	monitors, total, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list monitors", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list monitors")
		return
	}

	respondJSON(w, http.StatusOK, NewPaginatedResponse(monitors, total, limit, offset))
}

// GetByID handles GET /api/v1/monitors/{id}.
func (h *MonitorsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "monitor")
	if !ok {
		return
	}

	m, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, monitor.ErrMonitorNotFound) {
			respondError(w, http.StatusNotFound, "monitor not found")
			return
		}
		h.logger.Error(r.Context(), "failed to get monitor", map[string]interface{}{
			"error":      err.Error(),
			"monitor_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to get monitor")
		return
	}

	respondJSON(w, http.StatusOK, m)
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
