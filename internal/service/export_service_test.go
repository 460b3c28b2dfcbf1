package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

type complaintListerStub struct {
	complaints []models.Complaint
	err        error
}

func (s complaintListerStub) List(ctx context.Context, session *models.Session) ([]models.Complaint, error) {
	return s.complaints, s.err
}

func TestComplaintsCSVRendersRegister(t *testing.T) {
	svc := NewExportService(complaintListerStub{complaints: []models.Complaint{
		{ID: "C1", Date: "2026-08-01", TypeName: "Facilities", StatusName: "Open", StudentID: "S1", Description: "broken projector"},
	}}, nil)

	artifact, err := svc.ComplaintsCSV(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "text/csv", artifact.ContentType)
	require.True(t, strings.HasSuffix(artifact.FileName, ".csv"))

	content := string(artifact.Content)
	require.Contains(t, content, "ID,Date,Type,Status,Student,Description")
	require.Contains(t, content, "C1,2026-08-01,Facilities,Open,S1,broken projector")
}

func TestComplaintsPDFProducesDocument(t *testing.T) {
	svc := NewExportService(complaintListerStub{complaints: []models.Complaint{
		{ID: "C1", Description: "broken projector"},
	}}, nil)

	artifact, err := svc.ComplaintsPDF(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", artifact.ContentType)
	require.True(t, strings.HasPrefix(string(artifact.Content), "%PDF"))
}

func TestExportPropagatesListFailure(t *testing.T) {
	svc := NewExportService(complaintListerStub{err: errors.New("upstream down")}, nil)
	_, err := svc.ComplaintsCSV(context.Background(), nil)
	require.Error(t, err)
}
