package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/export"
)

type complaintLister interface {
	List(ctx context.Context, session *models.Session) ([]models.Complaint, error)
}

// ExportArtifact is a rendered report ready to stream to the caller.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the complaint register as a downloadable report.
type ExportService struct {
	complaints complaintLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(complaints complaintLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		complaints: complaints,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

var complaintReportHeaders = []string{"ID", "Date", "Type", "Status", "Student", "Description"}

// ComplaintsCSV renders the session's complaint register as CSV.
func (s *ExportService) ComplaintsCSV(ctx context.Context, session *models.Session) (*ExportArtifact, error) {
	dataset, err := s.complaintDataset(ctx, session)
	if err != nil {
		return nil, err
	}
	content, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render complaint CSV")
	}
	return &ExportArtifact{
		FileName:    reportFileName("csv"),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

// ComplaintsPDF renders the session's complaint register as PDF.
func (s *ExportService) ComplaintsPDF(ctx context.Context, session *models.Session) (*ExportArtifact, error) {
	dataset, err := s.complaintDataset(ctx, session)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Render(*dataset, "Complaint register")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render complaint PDF")
	}
	return &ExportArtifact{
		FileName:    reportFileName("pdf"),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *ExportService) complaintDataset(ctx context.Context, session *models.Session) (*export.Dataset, error) {
	complaints, err := s.complaints.List(ctx, session)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(complaints))
	for _, complaint := range complaints {
		rows = append(rows, map[string]string{
			"ID":          complaint.ID,
			"Date":        complaint.Date,
			"Type":        complaint.TypeName,
			"Status":      complaint.StatusName,
			"Student":     complaint.StudentID,
			"Description": complaint.Description,
		})
	}
	return &export.Dataset{Headers: complaintReportHeaders, Rows: rows}, nil
}

func reportFileName(ext string) string {
	return fmt.Sprintf("complaints_%s.%s", time.Now().Format("20060102_150405"), ext)
}
