package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

type authAPI interface {
	PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error)
}

// Token-bearing keys tried in order against the login response body. The
// legacy auth endpoint changed its envelope more than once; all observed
// spellings are tolerated.
var tokenResponseKeys = []string{"token", "accessToken", "jwt", "idToken"}

// LoginRequest holds credentials for authenticating against the upstream.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the upstream-issued token and the decoded session.
type LoginResult struct {
	Token   string          `json:"token"`
	Session *models.Session `json:"session"`
}

// RegisterRequest holds the registration payload.
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Phone           string `json:"phone"`
	AcademyID       string `json:"academy_id"`
	BranchID        string `json:"branch_id"`
	Role            string `json:"role"`
}

// AuthService proxies authentication to the legacy account endpoints. The
// gateway never stores or verifies credentials; it forwards them and decodes
// whatever token comes back.
type AuthService struct {
	api       authAPI
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(api authAPI, sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, sessions: sessions, validator: validate, logger: logger}
}

// Login authenticates against the upstream and returns the issued token
// together with the session derived from it.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	body, err := s.api.PostJSON(ctx, "/api/Account/Login", map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		mapped := mapUpstreamError(err, "login route not found")
		if appErr := appErrors.FromError(mapped); appErr.Code == appErrors.ErrUnauthorized.Code {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, mapped
	}

	token := extractToken(body)
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstreamPayload, "login response carried no token")
	}

	return &LoginResult{Token: token, Session: s.sessions.Decode(token)}, nil
}

// Register creates an account upstream, then immediately logs the new user
// in so the caller receives a usable token in one round trip.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	payload := stripEmptyFields(map[string]string{
		"firstName":       req.FirstName,
		"lastName":        req.LastName,
		"email":           req.Email,
		"password":        req.Password,
		"confirmPassword": req.ConfirmPassword,
		"phone":           req.Phone,
		"academyId":       req.AcademyID,
		"branchId":        req.BranchID,
		"role":            req.Role,
	})

	if _, err := s.api.PostJSON(ctx, "/api/Account/Register", payload); err != nil {
		return nil, mapUpstreamError(err, "registration route not found")
	}

	return s.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
}

// extractToken probes the conventional token keys, then the nested
// data.token shape, returning the first non-empty hit.
func extractToken(body interface{}) string {
	rec, ok := upstream.AsRecord(body)
	if !ok {
		return ""
	}
	if token := rec.Field(tokenResponseKeys, ""); token != "" {
		return token
	}
	if nested, ok := upstream.AsRecord(rec["data"]); ok {
		return nested.Field(tokenResponseKeys, "")
	}
	return ""
}
