package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mowglila/lugia-tracker/internal/repository"
)

type CardsHandler struct {
	Repo repository.Repository
}

func (h *CardsHandler) Register(r *gin.Engine) {
	r.GET("/api/cards", h.list)
}

// @Summary List tracked cards
// @Tags cards
// @Param active query bool false "active cards only"
// @Success 200 {object} map[string]any
// @Router /api/cards [get]
func (h *CardsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	activeOnly := false
	if v := boolQueryPtr(c, "active"); v != nil {
		activeOnly = *v
	}
	items, err := h.Repo.ListTrackedCards(c.Request.Context(), activeOnly)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
