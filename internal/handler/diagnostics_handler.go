package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// DiagnosticsHandler exposes backend introspection for operators.
type DiagnosticsHandler struct {
	service *service.DiagnosticsService
	metrics *service.MetricsService
}

// NewDiagnosticsHandler constructs a diagnostics handler.
func NewDiagnosticsHandler(svc *service.DiagnosticsService, metrics *service.MetricsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{service: svc, metrics: metrics}
}

// Paths godoc
// @Summary List routes the legacy backend advertises
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /diagnostics/paths [get]
func (h *DiagnosticsHandler) Paths(c *gin.Context) {
	report, err := h.service.Paths(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

type probeRequest struct {
	Paths []string `json:"paths"`
}

// Probe godoc
// @Summary Probe legacy routes for status and latency
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param payload body probeRequest true "Probe targets"
// @Success 200 {object} response.Envelope
// @Router /diagnostics/probe [post]
func (h *DiagnosticsHandler) Probe(c *gin.Context) {
	var req probeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	results, err := h.service.Probe(c.Request.Context(), req.Paths)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// Counters godoc
// @Summary Aggregated gateway counters
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /diagnostics/counters [get]
func (h *DiagnosticsHandler) Counters(c *gin.Context) {
	if h.metrics == nil {
		response.JSON(c, http.StatusOK, service.MetricsSnapshot{}, nil)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
