package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mowglila/lugia-tracker/internal/repository"
	"github.com/mowglila/lugia-tracker/internal/service"
)

type ListingsHandler struct {
	Query *service.ListingQueryService
}

func (h *ListingsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/listings")
	g.GET("", h.list)
	g.POST("/:item_id/hide", h.hide)
	g.GET("/:item_id/history", h.history)
}

var listingOrderColumns = map[string]string{
	"total_cost": "total_cost",
	"last_seen":  "last_seen",
	"first_seen": "first_seen",
}

// @Summary List listings with market value correlation
// @Tags listings
// @Param card_id query int false "tracked card id"
// @Param active query bool false "active filter"
// @Param grade query string false "canonical grade token"
// @Param graded query bool false "graded listings only"
// @Param format query string false "auction or fixed_price"
// @Param order_by query string false "total_cost, last_seen or first_seen"
// @Param asc query bool false "ascending order"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/listings [get]
func (h *ListingsHandler) list(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "listing service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListListingsParams{
		Limit:      limit,
		Offset:     offset,
		CardID:     uintQueryPtr(c, "card_id"),
		Active:     boolQueryPtr(c, "active"),
		Grade:      strQueryPtr(c, "grade"),
		GradedOnly: boolQueryPtr(c, "graded"),
		Format:     strQueryPtr(c, "format"),
		OrderBy:    parseOrder(c.Query("order_by"), listingOrderColumns),
		Asc:        boolQueryPtr(c, "asc"),
	}
	views, total, err := h.Query.List(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, views, paginationMeta(limit, offset, total))
}

// @Summary Hide a listing
// @Tags listings
// @Param item_id path string true "marketplace item id"
// @Success 200 {object} map[string]any
// @Router /api/listings/{item_id}/hide [post]
func (h *ListingsHandler) hide(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "listing service unavailable", nil)
		return
	}
	itemID := strings.TrimSpace(c.Param("item_id"))
	if itemID == "" {
		Error(c, http.StatusBadRequest, "invalid item id", nil)
		return
	}
	hidden, err := h.Query.Hide(c.Request.Context(), itemID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if !hidden {
		Error(c, http.StatusNotFound, "listing not found", nil)
		return
	}
	Ok(c, map[string]any{"item_id": itemID, "hidden": true}, nil)
}

// @Summary Price history for a listing
// @Tags listings
// @Param item_id path string true "marketplace item id"
// @Param limit query int false "max rows"
// @Success 200 {object} map[string]any
// @Router /api/listings/{item_id}/history [get]
func (h *ListingsHandler) history(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "listing service unavailable", nil)
		return
	}
	itemID := strings.TrimSpace(c.Param("item_id"))
	if itemID == "" {
		Error(c, http.StatusBadRequest, "invalid item id", nil)
		return
	}
	rows, err := h.Query.History(c.Request.Context(), itemID, intQuery(c, "limit", 200))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, rows, nil)
}
