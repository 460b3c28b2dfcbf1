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

type branchAPI interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
	PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error)
	PutJSON(ctx context.Context, path string, body interface{}) (interface{}, error)
	Delete(ctx context.Context, path string) error
}

var (
	branchIDKeys      = []string{"id", "Id", "ID", "branchId", "BranchId"}
	branchAcademyKeys = []string{"academyId", "AcademyId", "academyID", "academy_id"}
	branchNameKeys    = []string{"branchNameL1", "BranchNameL1", "name", "Name", "branchName"}
	branchNameAltKeys = []string{"branchNameL2", "BranchNameL2", "nameL2", "NameL2"}
	branchAddressKeys = []string{"address", "Address", "branchAddress"}
	branchMobileKeys  = []string{"mobile", "Mobile", "mobileNumber"}
	branchPhoneKeys   = []string{"phone", "Phone", "phoneNumber", "telephone"}
	branchWhatsKeys   = []string{"whatsapp", "Whatsapp", "whatsApp", "whatsappNumber"}
	branchEmailKeys   = []string{"email", "Email", "branchEmail"}
)

const unnamedBranch = "Unnamed branch"

// SaveBranchRequest is the payload for creating or updating a branch.
type SaveBranchRequest struct {
	AcademyID string `json:"academy_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	NameAlt   string `json:"name_alt"`
	Address   string `json:"address"`
	Mobile    string `json:"mobile"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// BranchService resolves and mutates academy branches.
type BranchService struct {
	api       branchAPI
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBranchService constructs a BranchService.
func NewBranchService(api branchAPI, validate *validator.Validate, logger *zap.Logger) *BranchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{api: api, validator: validate, logger: logger}
}

// ListByAcademy returns the branches of one academy. The per-academy route
// is preferred; when it is missing or empty the global branch list is
// fetched and filtered here instead.
func (s *BranchService) ListByAcademy(ctx context.Context, session *models.Session, academyID string) ([]models.Branch, error) {
	if strings.TrimSpace(academyID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academy id is required")
	}

	records, err := upstream.ResolveList(
		func() (interface{}, error) {
			return s.api.GetJSON(ctx, "/api/Branches/ByAcademy/"+url.PathEscape(academyID), nil)
		},
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Branches", nil) },
	)
	if err != nil {
		return nil, mapUpstreamError(err, "branches not found")
	}

	branches := make([]models.Branch, 0, len(records))
	for _, rec := range records {
		branch := mapBranch(rec)
		// The global list carries every academy; keep only the asked-for
		// one, retaining records that never mention an academy at all.
		if branch.AcademyID != "" && !strings.EqualFold(branch.AcademyID, academyID) {
			continue
		}
		branches = append(branches, branch)
	}

	return ApplyScope(session, branches,
		func(b models.Branch) string { return b.AcademyID },
		func(b models.Branch) string { return b.ID },
	), nil
}

// Create registers a new branch. Admin only; enforced at the route level.
func (s *BranchService) Create(ctx context.Context, req SaveBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	body, err := s.api.PostJSON(ctx, "/api/Branches", branchPayload(req))
	if err != nil {
		return nil, mapUpstreamError(err, "branch route not found")
	}
	return branchFromResponse(body, req), nil
}

// Update modifies an existing branch.
func (s *BranchService) Update(ctx context.Context, id string, req SaveBranchRequest) (*models.Branch, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "branch id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	body, err := s.api.PutJSON(ctx, "/api/Branches/"+url.PathEscape(id), branchPayload(req))
	if err != nil {
		return nil, mapUpstreamError(err, "branch not found")
	}
	branch := branchFromResponse(body, req)
	if branch.ID == "" {
		branch.ID = id
	}
	return branch, nil
}

// Delete removes a branch.
func (s *BranchService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "branch id is required")
	}
	if err := s.api.Delete(ctx, "/api/Branches/"+url.PathEscape(id)); err != nil {
		return mapUpstreamError(err, "branch not found")
	}
	return nil
}

func branchPayload(req SaveBranchRequest) map[string]string {
	return stripEmptyFields(map[string]string{
		"academyId":    req.AcademyID,
		"branchNameL1": req.Name,
		"branchNameL2": req.NameAlt,
		"address":      req.Address,
		"mobile":       req.Mobile,
		"phone":        req.Phone,
		"whatsapp":     req.WhatsApp,
		"email":        req.Email,
	})
}

// branchFromResponse prefers the upstream echo of the created record but
// falls back to the request payload when the response body is unusable.
func branchFromResponse(body interface{}, req SaveBranchRequest) *models.Branch {
	if rec, ok := upstream.UnwrapRecord(body); ok {
		branch := mapBranch(rec)
		if branch.ID != "" {
			return &branch
		}
	}
	return &models.Branch{
		AcademyID: req.AcademyID,
		Name:      req.Name,
		NameAlt:   req.NameAlt,
		Address:   req.Address,
		Mobile:    req.Mobile,
		Phone:     req.Phone,
		WhatsApp:  req.WhatsApp,
		Email:     req.Email,
	}
}

func mapBranch(rec upstream.Record) models.Branch {
	return models.Branch{
		ID:        rec.Field(branchIDKeys, ""),
		AcademyID: rec.Field(branchAcademyKeys, ""),
		Name:      rec.Field(branchNameKeys, unnamedBranch),
		NameAlt:   rec.Field(branchNameAltKeys, ""),
		Address:   rec.Field(branchAddressKeys, ""),
		Mobile:    rec.Field(branchMobileKeys, ""),
		Phone:     rec.Field(branchPhoneKeys, ""),
		WhatsApp:  rec.Field(branchWhatsKeys, ""),
		Email:     rec.Field(branchEmailKeys, ""),
	}
}
