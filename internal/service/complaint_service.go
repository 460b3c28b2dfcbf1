package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	"github.com/horizon-academy/academy-gateway/pkg/config"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

type complaintAPI interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
	PostMultipart(ctx context.Context, path string, fields map[string]string, file *upstream.FilePart) (interface{}, error)
}

const (
	cacheKeyComplaintTypes    = "reference:complaint:types"
	cacheKeyComplaintStatuses = "reference:complaint:statuses"
)

var (
	complaintIDKeys       = []string{"id", "Id", "ID", "complaintId", "ComplaintId"}
	complaintSequenceKeys = []string{"sequence", "Sequence", "seqNo", "complaintNo"}
	complaintDescKeys     = []string{"description", "Description", "complaintDescription"}
	complaintTypeIDKeys   = []string{"typeId", "TypeId", "complaintTypeId", "ComplaintTypeId"}
	complaintTypeNameKeys = []string{"typeName", "TypeName", "complaintTypeName"}
	complaintStatusIDKeys = []string{"statusId", "StatusId", "complaintStatusId", "ComplaintStatusId"}
	complaintStatusNmKeys = []string{"statusName", "StatusName", "complaintStatusName"}
	complaintStudentKeys  = []string{"studentId", "StudentId", "student_id"}
	complaintDateKeys     = []string{"date", "Date", "createdAt", "CreatedAt", "createdDate"}
	complaintFileKeys     = []string{"fileName", "FileName", "attachment", "filePath"}

	referenceIDKeys   = []string{"id", "Id", "ID"}
	referenceNameKeys = []string{"nameL1", "NameL1", "name", "Name", "title"}
)

// SubmitComplaintRequest is the payload for filing a complaint.
type SubmitComplaintRequest struct {
	Description string `json:"description" validate:"required"`
	TypeID      string `json:"type_id" validate:"required"`
	StudentID   string `json:"student_id"`
	Attachment  *upstream.FilePart
}

// ComplaintService proxies the complaints/reports widget: reference lists,
// the student's complaint history, and submission.
type ComplaintService struct {
	api       complaintAPI
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.ComplaintsConfig
	cacheTTL  time.Duration
}

// NewComplaintService constructs a ComplaintService.
func NewComplaintService(api complaintAPI, cache *CacheService, validate *validator.Validate, cfg config.ComplaintsConfig, cacheTTL time.Duration, logger *zap.Logger) *ComplaintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinDescriptionLength <= 0 {
		cfg.MinDescriptionLength = 10
	}
	return &ComplaintService{api: api, cache: cache, validator: validate, cfg: cfg, cacheTTL: cacheTTL, logger: logger}
}

// Types returns the complaint type reference list. Reference data only
// populates selection controls, so failures degrade to an empty list rather
// than erroring the whole view.
func (s *ComplaintService) Types(ctx context.Context) ([]models.ComplaintType, bool) {
	var cached []models.ComplaintType
	if hit, _ := s.cache.Get(ctx, cacheKeyComplaintTypes, &cached); hit {
		return cached, true
	}

	records, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/ComplaintTypes", nil) },
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Complaint/Types", nil) },
	)
	if err != nil {
		s.logger.Warn("complaint types unavailable", zap.Error(err))
		return []models.ComplaintType{}, false
	}

	types := make([]models.ComplaintType, 0, len(records))
	for _, rec := range records {
		types = append(types, models.ComplaintType{
			ID:   rec.Field(referenceIDKeys, ""),
			Name: rec.Field(referenceNameKeys, "Unnamed type"),
		})
	}
	_ = s.cache.Set(ctx, cacheKeyComplaintTypes, types, s.cacheTTL)
	return types, false
}

// Statuses returns the complaint status reference list, cached like Types.
func (s *ComplaintService) Statuses(ctx context.Context) ([]models.ComplaintStatus, bool) {
	var cached []models.ComplaintStatus
	if hit, _ := s.cache.Get(ctx, cacheKeyComplaintStatuses, &cached); hit {
		return cached, true
	}

	records, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/ComplaintStatuses", nil) },
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Complaint/Statuses", nil) },
	)
	if err != nil {
		s.logger.Warn("complaint statuses unavailable", zap.Error(err))
		return []models.ComplaintStatus{}, false
	}

	statuses := make([]models.ComplaintStatus, 0, len(records))
	for _, rec := range records {
		statuses = append(statuses, models.ComplaintStatus{
			ID:   rec.Field(referenceIDKeys, ""),
			Name: rec.Field(referenceNameKeys, "Unknown status"),
		})
	}
	_ = s.cache.Set(ctx, cacheKeyComplaintStatuses, statuses, s.cacheTTL)
	return statuses, false
}

// List returns complaints visible to the session. Status labels are
// resolved against the status reference list when the record carries only a
// status id.
func (s *ComplaintService) List(ctx context.Context, session *models.Session) ([]models.Complaint, error) {
	query := url.Values{}
	if session != nil && session.Scoped() && session.StudentID != "" {
		query.Set("studentId", session.StudentID)
	}

	records, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Complaints", query) },
		nil,
	)
	if err != nil {
		return nil, mapUpstreamError(err, "complaints not found")
	}

	statuses, _ := s.Statuses(ctx)
	statusByID := make(map[string]string, len(statuses))
	for _, status := range statuses {
		statusByID[strings.ToLower(status.ID)] = status.Name
	}

	complaints := make([]models.Complaint, 0, len(records))
	for _, rec := range records {
		complaint := mapComplaint(rec)
		if complaint.StatusName == "" && complaint.StatusID != "" {
			complaint.StatusName = statusByID[strings.ToLower(complaint.StatusID)]
		}
		complaints = append(complaints, complaint)
	}
	return complaints, nil
}

// Submit files a complaint. The description length gate runs before any
// network call; the upstream enforces the same minimum as a second line of
// defense. The student id resolves from the request, then the session, then
// the configured fallback, each source consulted only when the previous one
// yields nothing.
func (s *ComplaintService) Submit(ctx context.Context, session *models.Session, req SubmitComplaintRequest) (*models.Complaint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}
	if len(strings.TrimSpace(req.Description)) < s.cfg.MinDescriptionLength {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("description must be at least %d characters", s.cfg.MinDescriptionLength))
	}
	if req.Attachment != nil && int64(len(req.Attachment.Content)) > s.cfg.MaxAttachmentBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "attachment exceeds the size limit")
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" && session != nil {
		studentID = session.StudentID
	}
	if studentID == "" {
		studentID = s.cfg.FallbackStudentID
	}
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no student id could be resolved for this complaint")
	}

	fields := stripEmptyFields(map[string]string{
		"description": req.Description,
		"typeId":      req.TypeID,
		"studentId":   studentID,
		"reference":   uuid.NewString(),
	})

	body, err := s.api.PostMultipart(ctx, "/api/Complaints", fields, req.Attachment)
	if err != nil {
		return nil, mapUpstreamError(err, "complaint route not found")
	}

	if rec, ok := upstream.UnwrapRecord(body); ok {
		complaint := mapComplaint(rec)
		if complaint.ID != "" {
			return &complaint, nil
		}
	}
	return &models.Complaint{
		Description: req.Description,
		TypeID:      req.TypeID,
		StudentID:   studentID,
	}, nil
}

func mapComplaint(rec upstream.Record) models.Complaint {
	return models.Complaint{
		ID:          rec.Field(complaintIDKeys, ""),
		Sequence:    rec.Field(complaintSequenceKeys, ""),
		Description: rec.Field(complaintDescKeys, ""),
		TypeID:      rec.Field(complaintTypeIDKeys, ""),
		TypeName:    rec.Field(complaintTypeNameKeys, ""),
		StatusID:    rec.Field(complaintStatusIDKeys, ""),
		StatusName:  rec.Field(complaintStatusNmKeys, ""),
		StudentID:   rec.Field(complaintStudentKeys, ""),
		Date:        rec.Field(complaintDateKeys, ""),
		FileName:    rec.Field(complaintFileKeys, ""),
	}
}
