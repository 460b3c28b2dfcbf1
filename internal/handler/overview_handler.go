package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// OverviewHandler serves the aggregate landing view.
type OverviewHandler struct {
	service *service.OverviewService
}

// NewOverviewHandler constructs an overview handler.
func NewOverviewHandler(svc *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{service: svc}
}

// Build godoc
// @Summary Aggregate landing view
// @Tags Overview
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overview [get]
func (h *OverviewHandler) Build(c *gin.Context) {
	overview := h.service.Build(c.Request.Context(), sessionFromContext(c))
	response.JSON(c, http.StatusOK, overview, nil)
}
