package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-careers/internal/api/respond"
	"github.com/albapepper/scoracle-careers/internal/cache"
	"github.com/albapepper/scoracle-careers/internal/db"
	"github.com/albapepper/scoracle-careers/internal/export"
	"github.com/albapepper/scoracle-careers/internal/provider"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	defaultSortKey   = "points_per_game"
)

// GetCareer returns the stored career line for one player.
// @Summary Get player career
// @Description Returns career per-game averages and shooting percentages for one player.
// @Tags careers
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} provider.CareerSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /careers/{playerID} [get]
func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "INVALID_ID", "playerID must be a positive integer", "")
		return
	}

	cacheKey := fmt.Sprintf("career:%d", id)
	if h.serveCached(w, r, cacheKey, respond.ContentTypeJSON, cache.TTLCareer) {
		return
	}

	summary, err := h.store.GetCareer(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("No career found for player %d", id), "")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load career", err.Error())
		return
	}

	h.writeJSON(w, r, cacheKey, cache.TTLCareer, summary)
}

// ListCareers returns career lines ordered by a stat.
// @Summary List careers
// @Description Returns stored career lines ordered by the requested stat (descending; name ascending).
// @Tags careers
// @Produce json
// @Param sort query string false "Sort column" default(points_per_game)
// @Param limit query int false "Max rows (1-500)" default(50)
// @Success 200 {array} provider.CareerSummary
// @Failure 400 {object} respond.ErrorResponse
// @Router /careers [get]
func (h *Handler) ListCareers(w http.ResponseWriter, r *http.Request) {
	sortKey, limit, ok := parseListParams(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("careers:%s:%d", sortKey, limit)
	if h.serveCached(w, r, cacheKey, respond.ContentTypeJSON, cache.TTLCareerList) {
		return
	}

	summaries, err := h.store.ListCareers(r.Context(), sortKey, limit)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list careers", err.Error())
		return
	}
	if summaries == nil {
		summaries = []provider.CareerSummary{}
	}

	h.writeJSON(w, r, cacheKey, cache.TTLCareerList, summaries)
}

// ExportCareersCSV returns the same rows as ListCareers in the ingest CSV layout.
// @Summary Export careers as CSV
// @Description Returns stored career lines in the same column layout as the ingestion CSV.
// @Tags careers
// @Produce text/csv
// @Param sort query string false "Sort column" default(points_per_game)
// @Param limit query int false "Max rows (1-500)" default(50)
// @Success 200 {string} string
// @Failure 400 {object} respond.ErrorResponse
// @Router /careers.csv [get]
func (h *Handler) ExportCareersCSV(w http.ResponseWriter, r *http.Request) {
	sortKey, limit, ok := parseListParams(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("careers.csv:%s:%d", sortKey, limit)
	if h.serveCached(w, r, cacheKey, respond.ContentTypeCSV, cache.TTLCareerList) {
		return
	}

	summaries, err := h.store.ListCareers(r.Context(), sortKey, limit)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list careers", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, summaries); err != nil {
		respond.Error(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode CSV", err.Error())
		return
	}
	h.cacheAndServe(w, r, cacheKey, respond.ContentTypeCSV, cache.TTLCareerList, buf.Bytes())
}

// parseListParams validates sort and limit, writing a 400 on failure.
func parseListParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = defaultSortKey
	}
	if _, ok := db.SortColumns[sortKey]; !ok {
		respond.Error(w, http.StatusBadRequest, "INVALID_SORT", fmt.Sprintf("Unsupported sort column %q", sortKey), "")
		return "", 0, false
	}

	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxListLimit {
			respond.Error(w, http.StatusBadRequest, "INVALID_LIMIT",
				fmt.Sprintf("limit must be between 1 and %d", maxListLimit), "")
			return "", 0, false
		}
		limit = n
	}
	return sortKey, limit, true
}

// serveCached answers from the cache (200 or 304). Returns false on a miss.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key, contentType string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	respond.Serve(w, r, respond.Body{ContentType: contentType, Data: data, ETag: etag, TTL: ttl, FromCache: true})
	return true
}

// cacheAndServe stores an encoded body under key and writes it.
func (h *Handler) cacheAndServe(w http.ResponseWriter, r *http.Request, key, contentType string, ttl time.Duration, data []byte) {
	etag := h.cache.Set(key, data, ttl)
	respond.Serve(w, r, respond.Body{ContentType: contentType, Data: data, ETag: etag, TTL: ttl})
}

// writeJSON encodes v, caches it under key and writes it.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response", err.Error())
		return
	}
	h.cacheAndServe(w, r, key, respond.ContentTypeJSON, ttl, data)
}
