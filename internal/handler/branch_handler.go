package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// BranchHandler handles branch endpoints.
type BranchHandler struct {
	service *service.BranchService
}

// NewBranchHandler constructs a branch handler.
func NewBranchHandler(svc *service.BranchService) *BranchHandler {
	return &BranchHandler{service: svc}
}

// ListByAcademy godoc
// @Summary List branches of an academy
// @Tags Branches
// @Produce json
// @Param id path string true "Academy ID"
// @Success 200 {object} response.Envelope
// @Router /academies/{id}/branches [get]
func (h *BranchHandler) ListByAcademy(c *gin.Context) {
	branches, err := h.service.ListByAcademy(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branches, nil)
}

// Create godoc
// @Summary Create branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param payload body service.SaveBranchRequest true "Branch payload"
// @Success 201 {object} response.Envelope
// @Router /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req service.SaveBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, branch)
}

// Update godoc
// @Summary Update branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param payload body service.SaveBranchRequest true "Branch payload"
// @Success 200 {object} response.Envelope
// @Router /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	var req service.SaveBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branch, nil)
}

// Delete godoc
// @Summary Delete branch
// @Tags Branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 204
// @Router /branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
