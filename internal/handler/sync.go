package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mowglila/lugia-tracker/internal/repository"
	"github.com/mowglila/lugia-tracker/internal/service"
)

// SyncHandler exposes manual triggers for the cron jobs and the
// per-scope sync bookkeeping. Triggers share the service mutex with
// cron, so a manual run during a scheduled one waits instead of
// interleaving.
type SyncHandler struct {
	Repo        repository.Repository
	Listings    *service.ListingSyncService
	MarketValue *service.MarketValueSyncService
	Settings    *service.SystemSettingsService
}

func (h *SyncHandler) Register(r *gin.Engine) {
	r.GET("/api/sync-state", h.state)
	r.GET("/api/runs", h.runs)
	g := r.Group("/api/sync")
	g.POST("/listings", h.syncListings)
	g.POST("/market-values", h.syncMarketValues)
}

// @Summary Sync bookkeeping per scope
// @Tags sync
// @Success 200 {object} map[string]any
// @Router /api/sync-state [get]
func (h *SyncHandler) state(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListSyncStates(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Ingestion run history
// @Tags sync
// @Param card_id query int false "tracked card id"
// @Param status query string false "success or failed"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/runs [get]
func (h *SyncHandler) runs(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListSearchRunsParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
		CardID: uintQueryPtr(c, "card_id"),
		Status: strQueryPtr(c, "status"),
	}
	items, err := h.Repo.ListSearchRuns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Trigger a listing sync cycle
// @Tags sync
// @Success 200 {object} map[string]any
// @Router /api/sync/listings [post]
func (h *SyncHandler) syncListings(c *gin.Context) {
	if h.Listings == nil {
		Error(c, http.StatusInternalServerError, "listing sync unavailable", nil)
		return
	}
	if h.Settings != nil && !h.Settings.IsEnabled(c.Request.Context(), service.FeatureListingSync, true) {
		Error(c, http.StatusConflict, "listing sync disabled", nil)
		return
	}
	results, err := h.Listings.SyncAll(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"results": results})
		return
	}
	Ok(c, results, nil)
}

// @Summary Trigger a market value sync cycle
// @Tags sync
// @Success 200 {object} map[string]any
// @Router /api/sync/market-values [post]
func (h *SyncHandler) syncMarketValues(c *gin.Context) {
	if h.MarketValue == nil {
		Error(c, http.StatusInternalServerError, "market value sync unavailable", nil)
		return
	}
	if h.Settings != nil && !h.Settings.IsEnabled(c.Request.Context(), service.FeatureMarketValueSync, true) {
		Error(c, http.StatusConflict, "market value sync disabled", nil)
		return
	}
	results, err := h.MarketValue.SyncAll(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"results": results})
		return
	}
	Ok(c, results, nil)
}
