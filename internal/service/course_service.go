package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
)

type courseFetcher interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
}

var (
	courseIDKeys        = []string{"id", "Id", "ID", "courseId", "CourseId"}
	courseMasterRefKeys = []string{"masterId", "MasterId", "courseMasterId", "CourseMasterId", "sessionMasterId"}
	courseTitleKeys     = []string{"titleL1", "TitleL1", "title", "Title", "name", "Name"}
	courseDescKeys      = []string{"descriptionL1", "DescriptionL1", "description", "Description"}
	courseAcademyKeys   = []string{"academyId", "AcademyId", "academy_id"}
	courseBranchKeys    = []string{"branchId", "BranchId", "branch_id"}
)

// PlaceholderCourseTitle marks a course whose title could not be resolved
// from either the detail record or its master.
const PlaceholderCourseTitle = "Untitled course"

// CourseService assembles a displayable course list out of the legacy
// master/detail split: master records define sessions, detail records carry
// content joined to a master by foreign key.
type CourseService struct {
	api    courseFetcher
	logger *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(api courseFetcher, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{api: api, logger: logger}
}

// List resolves courses in two levels. Masters are fetched first to build an
// id → title/description index, then details are joined against it. When
// the joined details carry no displayable title at all, the detail set is
// judged to be the wrong resource for display and masters are presented
// directly (see detailsUndisplayable).
func (s *CourseService) List(ctx context.Context, session *models.Session) ([]models.Course, error) {
	masterRecords, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/CourseMasters", nil) },
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Courses", nil) },
	)
	if err != nil {
		return nil, mapUpstreamError(err, "courses not found")
	}

	masters := make([]models.Course, 0, len(masterRecords))
	masterIndex := make(map[string]models.Course, len(masterRecords))
	for _, rec := range masterRecords {
		course := mapCourse(rec, models.CourseSourceMaster)
		masters = append(masters, course)
		if course.ID != "" {
			masterIndex[course.ID] = course
		}
	}

	detailRecords, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/CourseDetails", nil) },
		nil,
	)
	if err != nil {
		return nil, mapUpstreamError(err, "courses not found")
	}

	details := make([]models.Course, 0, len(detailRecords))
	for _, rec := range detailRecords {
		course := mapCourse(rec, models.CourseSourceDetail)
		if course.Title == PlaceholderCourseTitle && course.MasterID != "" {
			if master, ok := masterIndex[course.MasterID]; ok {
				course.Title = master.Title
				if course.Description == "" {
					course.Description = master.Description
				}
			}
		}
		details = append(details, course)
	}

	courses := details
	if len(details) == 0 || detailsUndisplayable(details) {
		courses = masters
	}

	return ApplyScope(session, courses,
		func(c models.Course) string { return c.AcademyID },
		func(c models.Course) string { return c.BranchID },
	), nil
}

// detailsUndisplayable is the explicit discard policy for the master/detail
// join: when every joined detail still carries the placeholder title, the
// detail endpoint is assumed to serve a different resource and the mapping
// is discarded in favor of the master records.
func detailsUndisplayable(details []models.Course) bool {
	for _, course := range details {
		if course.Title != PlaceholderCourseTitle {
			return false
		}
	}
	return true
}

func mapCourse(rec upstream.Record, source models.CourseSource) models.Course {
	return models.Course{
		ID:          rec.Field(courseIDKeys, ""),
		MasterID:    rec.Field(courseMasterRefKeys, ""),
		Title:       rec.Field(courseTitleKeys, PlaceholderCourseTitle),
		Description: rec.Field(courseDescKeys, ""),
		AcademyID:   rec.Field(courseAcademyKeys, ""),
		BranchID:    rec.Field(courseBranchKeys, ""),
		Source:      source,
	}
}
