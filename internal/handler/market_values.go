package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mowglila/lugia-tracker/internal/repository"
)

type MarketValuesHandler struct {
	Repo repository.Repository
}

func (h *MarketValuesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/market-values")
	g.GET("", h.list)
	g.GET("/current", h.current)
}

// @Summary Market value history
// @Tags market-values
// @Param card_id query int false "tracked card id"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/market-values [get]
func (h *MarketValuesHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListMarketValuesParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
		CardID: uintQueryPtr(c, "card_id"),
	}
	items, err := h.Repo.ListMarketValues(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Current market value per tracked card
// @Tags market-values
// @Param card_id query int false "tracked card id"
// @Success 200 {object} map[string]any
// @Router /api/market-values/current [get]
func (h *MarketValuesHandler) current(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	if cardID := uintQueryPtr(c, "card_id"); cardID != nil {
		current, err := h.Repo.GetCurrentMarketValue(c.Request.Context(), *cardID)
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		if current == nil {
			Error(c, http.StatusNotFound, "no market value recorded", nil)
			return
		}
		Ok(c, current, nil)
		return
	}

	cards, err := h.Repo.ListTrackedCards(c.Request.Context(), false)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	out := make([]map[string]any, 0, len(cards))
	for _, card := range cards {
		current, err := h.Repo.GetCurrentMarketValue(c.Request.Context(), card.ID)
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		out = append(out, map[string]any{
			"card":  card,
			"value": current,
		})
	}
	Ok(c, out, nil)
}
