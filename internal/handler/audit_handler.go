package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/repository"
	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// AuditHandler exposes the mutation trail to administrators.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// Trail godoc
// @Summary List recorded mutations
// @Tags Audit
// @Produce json
// @Param actor query string false "Filter by actor"
// @Param action query string false "Filter by action"
// @Param resource query string false "Filter by resource"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) Trail(c *gin.Context) {
	filter := repository.AuditFilter{
		Actor:    c.Query("actor"),
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.Limit = limit
	}

	entries, err := h.service.Trail(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
