package handlers

import (
	"net/http"

	"github.com/openshelf/openshelf/internal/services"
)

// StatsHandler serves the dashboard summary endpoints.
type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Admin(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeUnauthenticated(w)
		return
	}

	stats, err := h.statsService.User(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
