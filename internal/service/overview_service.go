package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

type overviewAcademyLister interface {
	List(ctx context.Context, session *models.Session) ([]models.Academy, error)
}

type overviewCourseLister interface {
	List(ctx context.Context, session *models.Session) ([]models.Course, error)
}

type overviewComplaintTypes interface {
	Types(ctx context.Context) ([]models.ComplaintType, bool)
}

// Overview is the aggregate payload behind the landing view.
type Overview struct {
	Academies      []models.Academy       `json:"academies"`
	Courses        []models.Course        `json:"courses"`
	ComplaintTypes []models.ComplaintType `json:"complaint_types"`
}

// OverviewService assembles the landing view from independent upstream
// fetches. The fetches run concurrently and do not depend on each other: a
// failed section logs and renders empty instead of failing the whole view.
type OverviewService struct {
	academies  overviewAcademyLister
	courses    overviewCourseLister
	complaints overviewComplaintTypes
	logger     *zap.Logger
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(academies overviewAcademyLister, courses overviewCourseLister, complaints overviewComplaintTypes, logger *zap.Logger) *OverviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{academies: academies, courses: courses, complaints: complaints, logger: logger}
}

// Build fetches every section of the overview concurrently. Cancellation of
// ctx cancels all in-flight fetches.
func (s *OverviewService) Build(ctx context.Context, session *models.Session) *Overview {
	overview := &Overview{
		Academies:      []models.Academy{},
		Courses:        []models.Course{},
		ComplaintTypes: []models.ComplaintType{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		academies, err := s.academies.List(ctx, session)
		if err != nil {
			s.logger.Warn("overview academies unavailable", zap.Error(err))
			return
		}
		overview.Academies = academies
	}()

	go func() {
		defer wg.Done()
		courses, err := s.courses.List(ctx, session)
		if err != nil {
			s.logger.Warn("overview courses unavailable", zap.Error(err))
			return
		}
		overview.Courses = courses
	}()

	go func() {
		defer wg.Done()
		if types, _ := s.complaints.Types(ctx); types != nil {
			overview.ComplaintTypes = types
		}
	}()

	wg.Wait()
	return overview
}
