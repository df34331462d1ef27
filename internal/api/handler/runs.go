package handler

import (
	"errors"
	"net/http"

	"github.com/albapepper/scoracle-careers/internal/api/respond"
	"github.com/albapepper/scoracle-careers/internal/cache"
	"github.com/albapepper/scoracle-careers/internal/db"
)

// GetLatestRun returns the most recent ingestion run.
// @Summary Latest ingestion run
// @Description Returns counts and timing for the most recently started ingestion run.
// @Tags runs
// @Produce json
// @Success 200 {object} db.Run
// @Failure 404 {object} respond.ErrorResponse
// @Router /runs/latest [get]
func (h *Handler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "runs:latest"
	if h.serveCached(w, r, cacheKey, respond.ContentTypeJSON, cache.TTLRun) {
		return
	}

	run, err := h.store.LatestRun(r.Context())
	if errors.Is(err, db.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "NOT_FOUND", "No ingestion runs recorded", "")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load latest run", err.Error())
		return
	}

	h.writeJSON(w, r, cacheKey, cache.TTLRun, run)
}
