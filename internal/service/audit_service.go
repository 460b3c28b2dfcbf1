package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/repository"
)

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, error)
}

// AuditService records proxied mutations. Recording is best-effort: a failed
// write must never fail the mutation it describes.
type AuditService struct {
	store   auditStore
	enabled bool
	logger  *zap.Logger
}

// NewAuditService constructs an AuditService. A nil store disables recording.
func NewAuditService(store auditStore, enabled bool, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, enabled: enabled && store != nil, logger: logger}
}

// Enabled reports whether mutations are being recorded.
func (s *AuditService) Enabled() bool {
	return s != nil && s.enabled
}

// AuditEvent describes one mutation to record.
type AuditEvent struct {
	Session    *models.Session
	Action     string
	Resource   string
	ResourceID string
	Detail     interface{}
	IPAddress  string
	UserAgent  string
}

// Record persists one audit entry. Detail may be any JSON-marshalable value.
func (s *AuditService) Record(ctx context.Context, event AuditEvent) {
	if !s.Enabled() {
		return
	}

	entry := &models.AuditLog{
		Actor:     "anonymous",
		Action:    event.Action,
		Resource:  event.Resource,
		IPAddress: event.IPAddress,
		UserAgent: event.UserAgent,
	}
	if event.Session != nil && event.Session.Email != "" {
		entry.Actor = event.Session.Email
	}
	if event.ResourceID != "" {
		resourceID := event.ResourceID
		entry.ResourceID = &resourceID
	}
	if event.Detail != nil {
		raw, err := json.Marshal(event.Detail)
		if err != nil {
			s.logger.Warn("audit detail not serializable", zap.Error(err))
		} else {
			entry.Detail = raw
		}
	}

	if err := s.store.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", event.Action),
			zap.String("resource", event.Resource),
			zap.Error(err))
	}
}

// Trail lists recorded entries for the admin audit view.
func (s *AuditService) Trail(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, error) {
	if !s.Enabled() {
		return []models.AuditLog{}, nil
	}
	return s.store.List(ctx, filter)
}
