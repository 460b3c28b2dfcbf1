package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// ReportHandler streams complaint register exports.
type ReportHandler struct {
	service *service.ExportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ExportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Complaints godoc
// @Summary Export the complaint register
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /reports/complaints [get]
func (h *ReportHandler) Complaints(c *gin.Context) {
	session := sessionFromContext(c)

	var (
		artifact *service.ExportArtifact
		err      error
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		artifact, err = h.service.ComplaintsCSV(c.Request.Context(), session)
	case "pdf":
		artifact, err = h.service.ComplaintsPDF(c.Request.Context(), session)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format)))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}
