package models

import "strings"

// Known role spellings observed in legacy tokens.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleManager    = "manager"
	RoleStudent    = "student"
)

// Session is the identity derived from a bearer token's claims. It is
// recomputed per request; the gateway holds no session state of its own.
type Session struct {
	Authenticated bool     `json:"authenticated"`
	Name          string   `json:"name,omitempty"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles"`
	AcademyID     string   `json:"academy_id,omitempty"`
	BranchID      string   `json:"branch_id,omitempty"`
	StudentID     string   `json:"student_id,omitempty"`
}

// Anonymous is the fail-closed shape for missing or malformed tokens.
func Anonymous() *Session {
	return &Session{Authenticated: false, Roles: []string{}}
}

// HasRole reports whether the session carries the role, case-insensitively.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session carries an admin-equivalent role.
func (s *Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin) || s.HasRole(RoleSuperAdmin) || s.HasRole(RoleManager)
}

// IsStudent reports whether the session carries a student-equivalent role.
func (s *Session) IsStudent() bool {
	return s.HasRole(RoleStudent)
}

// Scoped reports whether scope filtering applies: a non-admin student
// session restricted to its academy/branch subset.
func (s *Session) Scoped() bool {
	return s != nil && s.Authenticated && !s.IsAdmin() && s.IsStudent()
}
