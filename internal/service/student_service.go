package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

type studentAPI interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
	PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error)
	PutJSON(ctx context.Context, path string, body interface{}) (interface{}, error)
	Delete(ctx context.Context, path string) error
}

var (
	studentIDKeys      = []string{"id", "Id", "ID", "studentId", "StudentId"}
	studentAccountKeys = []string{"accountId", "AccountId", "applicationUserId", "userId"}
	studentNameKeys    = []string{"fullNameL1", "FullNameL1", "fullName", "FullName", "name", "Name"}
	studentFirstKeys   = []string{"firstNameL1", "firstName", "FirstName"}
	studentLastKeys    = []string{"lastNameL1", "lastName", "LastName"}
	studentEmailKeys   = []string{"email", "Email"}
	studentPhoneKeys   = []string{"phone", "Phone", "mobile", "Mobile", "phoneNumber"}
	studentAcademyKeys = []string{"academyId", "AcademyId", "academy_id"}
	studentBranchKeys  = []string{"branchId", "BranchId", "branch_id"}
)

const unnamedStudent = "Unnamed student"

// SaveStudentRequest is the payload for creating or updating a student.
type SaveStudentRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	AcademyID string `json:"academy_id"`
	BranchID  string `json:"branch_id"`
}

// StudentService resolves and mutates student records.
type StudentService struct {
	api       studentAPI
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(api studentAPI, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{api: api, validator: validate, logger: logger}
}

// List returns students, restricted to the session's scope for non-admins.
func (s *StudentService) List(ctx context.Context, session *models.Session) ([]models.Student, error) {
	records, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Students", nil) },
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Student/GetAll", nil) },
	)
	if err != nil {
		return nil, mapUpstreamError(err, "students not found")
	}

	students := make([]models.Student, 0, len(records))
	for _, rec := range records {
		students = append(students, mapStudent(rec))
	}

	return ApplyScope(session, students,
		func(st models.Student) string { return st.AcademyID },
		func(st models.Student) string { return st.BranchID },
	), nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	body, err := s.api.GetJSON(ctx, "/api/Students/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, mapUpstreamError(err, "student not found")
	}
	rec, ok := upstream.UnwrapRecord(body)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUpstreamPayload, "student payload has no recognizable shape")
	}
	student := mapStudent(rec)
	return &student, nil
}

// Create registers a new student record.
func (s *StudentService) Create(ctx context.Context, req SaveStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	body, err := s.api.PostJSON(ctx, "/api/Students", studentPayload(req))
	if err != nil {
		return nil, mapUpstreamError(err, "student route not found")
	}
	return studentFromResponse(body, req), nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req SaveStudentRequest) (*models.Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	body, err := s.api.PutJSON(ctx, "/api/Students/"+url.PathEscape(id), studentPayload(req))
	if err != nil {
		return nil, mapUpstreamError(err, "student not found")
	}
	student := studentFromResponse(body, req)
	if student.ID == "" {
		student.ID = id
	}
	return student, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if err := s.api.Delete(ctx, "/api/Students/"+url.PathEscape(id)); err != nil {
		return mapUpstreamError(err, "student not found")
	}
	return nil
}

func studentPayload(req SaveStudentRequest) map[string]string {
	return stripEmptyFields(map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		"phone":     req.Phone,
		"academyId": req.AcademyID,
		"branchId":  req.BranchID,
	})
}

func studentFromResponse(body interface{}, req SaveStudentRequest) *models.Student {
	if rec, ok := upstream.UnwrapRecord(body); ok {
		student := mapStudent(rec)
		if student.ID != "" {
			return &student
		}
	}
	return &models.Student{
		FullName:  strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:     req.Email,
		Phone:     req.Phone,
		AcademyID: req.AcademyID,
		BranchID:  req.BranchID,
	}
}

func mapStudent(rec upstream.Record) models.Student {
	fullName := rec.Field(studentNameKeys, "")
	if fullName == "" {
		first := rec.Field(studentFirstKeys, "")
		last := rec.Field(studentLastKeys, "")
		fullName = strings.TrimSpace(first + " " + last)
	}
	if fullName == "" {
		fullName = unnamedStudent
	}
	return models.Student{
		ID:        rec.Field(studentIDKeys, ""),
		AccountID: rec.Field(studentAccountKeys, ""),
		FullName:  fullName,
		Email:     rec.Field(studentEmailKeys, ""),
		Phone:     rec.Field(studentPhoneKeys, ""),
		AcademyID: rec.Field(studentAcademyKeys, ""),
		BranchID:  rec.Field(studentBranchKeys, ""),
	}
}
