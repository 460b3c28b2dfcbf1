package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/repository"
)

type auditStoreStub struct {
	entries []*models.AuditLog
	err     error
}

func (s *auditStoreStub) Create(ctx context.Context, entry *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *auditStoreStub) List(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, error) {
	result := make([]models.AuditLog, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, *entry)
	}
	return result, s.err
}

func TestAuditRecordCapturesActorAndDetail(t *testing.T) {
	store := &auditStoreStub{}
	svc := NewAuditService(store, true, nil)

	session := &models.Session{Authenticated: true, Email: "admin@horizon.example"}
	svc.Record(context.Background(), AuditEvent{
		Session:    session,
		Action:     models.AuditActionDelete,
		Resource:   "branch",
		ResourceID: "B1",
		Detail:     map[string]string{"method": "DELETE"},
		IPAddress:  "10.0.0.1",
	})

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	require.Equal(t, "admin@horizon.example", entry.Actor)
	require.Equal(t, "B1", *entry.ResourceID)
	require.Contains(t, string(entry.Detail), "DELETE")
	require.Equal(t, "10.0.0.1", entry.IPAddress)
}

func TestAuditRecordAnonymousActor(t *testing.T) {
	store := &auditStoreStub{}
	svc := NewAuditService(store, true, nil)

	svc.Record(context.Background(), AuditEvent{Action: models.AuditActionLogin, Resource: "account"})
	require.Len(t, store.entries, 1)
	require.Equal(t, "anonymous", store.entries[0].Actor)
}

func TestAuditDisabledIsSilent(t *testing.T) {
	store := &auditStoreStub{}
	svc := NewAuditService(store, false, nil)

	svc.Record(context.Background(), AuditEvent{Action: models.AuditActionCreate, Resource: "student"})
	require.Empty(t, store.entries)

	trail, err := svc.Trail(context.Background(), repository.AuditFilter{})
	require.NoError(t, err)
	require.Empty(t, trail)
}

func TestAuditWriteFailureDoesNotPanic(t *testing.T) {
	svc := NewAuditService(&auditStoreStub{err: errors.New("db down")}, true, nil)
	require.NotPanics(t, func() {
		svc.Record(context.Background(), AuditEvent{Action: models.AuditActionCreate, Resource: "branch"})
	})
}
