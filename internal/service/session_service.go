package service

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

// Claim-key spellings observed across legacy token issuers. Plain keys come
// from the newer issuer, the namespaced URIs from the original ASP.NET one.
var (
	roleClaimKeys = []string{
		"role",
		"roles",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/role",
	}
	nameClaimKeys = []string{
		"name",
		"fullName",
		"FullName",
		"unique_name",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	}
	givenNameClaimKeys  = []string{"given_name", "firstName", "FirstName"}
	familyNameClaimKeys = []string{"family_name", "lastName", "LastName"}
	emailClaimKeys      = []string{
		"email",
		"Email",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	}
	academyClaimKeys = []string{"academyId", "AcademyId", "academy_id", "academyID"}
	branchClaimKeys  = []string{"branchId", "BranchId", "branch_id", "branchID"}
	studentClaimKeys = []string{"studentId", "StudentId", "student_id"}
)

// SessionService derives a Session from a bearer token's claims. The token
// is decoded without signature verification: the gateway does not hold the
// legacy signing key, and the upstream re-validates every forwarded token.
// A malformed token fails closed to the unauthenticated shape.
type SessionService struct {
	parser *jwt.Parser
	logger *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{parser: jwt.NewParser(), logger: logger}
}

// Decode resolves the identity carried by the token. It never returns an
// error: missing or undecodable tokens yield the anonymous session.
func (s *SessionService) Decode(token string) *models.Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Anonymous()
	}

	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		s.logger.Debug("undecodable bearer token", zap.Error(err))
		return models.Anonymous()
	}

	session := &models.Session{
		Authenticated: true,
		Roles:         resolveRoles(claims),
		Email:         claimField(claims, emailClaimKeys),
		AcademyID:     claimField(claims, academyClaimKeys),
		BranchID:      claimField(claims, branchClaimKeys),
		StudentID:     claimField(claims, studentClaimKeys),
	}
	session.Name = resolveName(claims, session.Email)
	return session
}

// resolveName tries the full name, then given+family concatenation, then the
// email address, in that priority order.
func resolveName(claims jwt.MapClaims, email string) string {
	if name := claimField(claims, nameClaimKeys); name != "" {
		return name
	}
	given := claimField(claims, givenNameClaimKeys)
	family := claimField(claims, familyNameClaimKeys)
	if full := strings.TrimSpace(given + " " + family); full != "" {
		return full
	}
	return email
}

// resolveRoles flattens every role claim spelling into a deduplicated set.
// Values arrive as a single string, a comma-joined string, or an array.
func resolveRoles(claims jwt.MapClaims) []string {
	seen := make(map[string]struct{})
	roles := make([]string, 0, 4)

	add := func(raw string) {
		for _, part := range strings.Split(raw, ",") {
			role := strings.TrimSpace(part)
			if role == "" {
				continue
			}
			key := strings.ToLower(role)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			roles = append(roles, role)
		}
	}

	for _, key := range roleClaimKeys {
		switch v := claims[key].(type) {
		case string:
			add(v)
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		}
	}
	return roles
}

func claimField(claims jwt.MapClaims, keys []string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
