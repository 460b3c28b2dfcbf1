package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/middleware"
	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// ComplaintHandler handles the complaints widget: reference lists, the
// caller's register, and submission.
type ComplaintHandler struct {
	service *service.ComplaintService
}

// NewComplaintHandler constructs a complaint handler.
func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: svc}
}

// List godoc
// @Summary List complaints visible to the caller
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	complaints, err := h.service.List(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaints, nil)
}

// Types godoc
// @Summary List complaint types
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints/types [get]
func (h *ComplaintHandler) Types(c *gin.Context) {
	types, cached := h.service.Types(c.Request.Context())
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, types, nil, middleware.ExtractMeta(c))
}

// Statuses godoc
// @Summary List complaint statuses
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints/statuses [get]
func (h *ComplaintHandler) Statuses(c *gin.Context) {
	statuses, cached := h.service.Statuses(c.Request.Context())
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, statuses, nil, middleware.ExtractMeta(c))
}

// Submit godoc
// @Summary Submit a complaint
// @Tags Complaints
// @Accept multipart/form-data
// @Produce json
// @Param description formData string true "Complaint description"
// @Param type_id formData string true "Complaint type id"
// @Param student_id formData string false "Student id override"
// @Param attachment formData file false "Optional attachment"
// @Success 201 {object} response.Envelope
// @Router /complaints [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	req := service.SubmitComplaintRequest{
		Description: c.PostForm("description"),
		TypeID:      c.PostForm("type_id"),
		StudentID:   c.PostForm("student_id"),
	}

	if header, err := c.FormFile("attachment"); err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable attachment"))
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable attachment"))
			return
		}
		req.Attachment = &upstream.FilePart{
			FieldName: "file",
			FileName:  header.Filename,
			Content:   content,
		}
	}

	complaint, err := h.service.Submit(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, complaint)
}
