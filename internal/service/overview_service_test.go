package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

type academyListerStub struct {
	academies []models.Academy
	err       error
}

func (s academyListerStub) List(ctx context.Context, session *models.Session) ([]models.Academy, error) {
	return s.academies, s.err
}

type courseListerStub struct {
	courses []models.Course
	err     error
}

func (s courseListerStub) List(ctx context.Context, session *models.Session) ([]models.Course, error) {
	return s.courses, s.err
}

type complaintTypesStub struct {
	types []models.ComplaintType
}

func (s complaintTypesStub) Types(ctx context.Context) ([]models.ComplaintType, bool) {
	return s.types, false
}

func TestOverviewAssemblesAllSections(t *testing.T) {
	svc := NewOverviewService(
		academyListerStub{academies: []models.Academy{{ID: "A1"}}},
		courseListerStub{courses: []models.Course{{ID: "C1"}, {ID: "C2"}}},
		complaintTypesStub{types: []models.ComplaintType{{ID: "T1"}}},
		nil,
	)

	overview := svc.Build(context.Background(), nil)
	require.Len(t, overview.Academies, 1)
	require.Len(t, overview.Courses, 2)
	require.Len(t, overview.ComplaintTypes, 1)
}

func TestOverviewSectionFailureDoesNotSpread(t *testing.T) {
	svc := NewOverviewService(
		academyListerStub{err: errors.New("upstream down")},
		courseListerStub{courses: []models.Course{{ID: "C1"}}},
		complaintTypesStub{},
		nil,
	)

	overview := svc.Build(context.Background(), nil)
	require.Empty(t, overview.Academies)
	require.NotNil(t, overview.Academies)
	require.Len(t, overview.Courses, 1)
	require.NotNil(t, overview.ComplaintTypes)
}
