package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// AcademyHandler handles academy endpoints.
type AcademyHandler struct {
	service *service.AcademyService
}

// NewAcademyHandler constructs an academy handler.
func NewAcademyHandler(svc *service.AcademyService) *AcademyHandler {
	return &AcademyHandler{service: svc}
}

// List godoc
// @Summary List academies visible to the caller
// @Tags Academies
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academies [get]
func (h *AcademyHandler) List(c *gin.Context) {
	academies, err := h.service.List(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academies, nil)
}

// Get godoc
// @Summary Get academy by id
// @Tags Academies
// @Produce json
// @Param id path string true "Academy ID"
// @Success 200 {object} response.Envelope
// @Router /academies/{id} [get]
func (h *AcademyHandler) Get(c *gin.Context) {
	academy, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academy, nil)
}
