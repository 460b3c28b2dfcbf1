package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestSessionDecodeFailsClosed(t *testing.T) {
	svc := NewSessionService(nil)

	for _, token := range []string{"", "   ", "not-a-jwt", "a.b", "a.%%%.c"} {
		session := svc.Decode(token)
		require.False(t, session.Authenticated, "token %q should fail closed", token)
		require.Empty(t, session.Roles)
	}
}

func TestSessionDecodePlainClaims(t *testing.T) {
	svc := NewSessionService(nil)
	token := signTestToken(t, jwt.MapClaims{
		"name":      "Dana Farid",
		"email":     "dana@horizon.example",
		"role":      "Student",
		"academyId": "AC-1",
		"branchId":  "BR-2",
		"studentId": "ST-3",
	})

	session := svc.Decode(token)
	require.True(t, session.Authenticated)
	require.Equal(t, "Dana Farid", session.Name)
	require.Equal(t, "dana@horizon.example", session.Email)
	require.Equal(t, []string{"Student"}, session.Roles)
	require.Equal(t, "AC-1", session.AcademyID)
	require.Equal(t, "BR-2", session.BranchID)
	require.Equal(t, "ST-3", session.StudentID)
	require.True(t, session.Scoped())
}

func TestSessionDecodeNamespacedClaims(t *testing.T) {
	svc := NewSessionService(nil)
	token := signTestToken(t, jwt.MapClaims{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name":         "Sami Noor",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress": "sami@horizon.example",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role":       "Admin",
	})

	session := svc.Decode(token)
	require.Equal(t, "Sami Noor", session.Name)
	require.Equal(t, "sami@horizon.example", session.Email)
	require.True(t, session.IsAdmin())
}

func TestSessionDecodeRoleShapes(t *testing.T) {
	svc := NewSessionService(nil)

	t.Run("comma joined deduplicates case-insensitively", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"role": "Student, student , Manager"})
		session := svc.Decode(token)
		require.Equal(t, []string{"Student", "Manager"}, session.Roles)
	})

	t.Run("array values", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"roles": []string{"Teacher", "Admin"}})
		session := svc.Decode(token)
		require.Equal(t, []string{"Teacher", "Admin"}, session.Roles)
		require.True(t, session.IsAdmin())
	})
}

func TestSessionDecodeNamePriority(t *testing.T) {
	svc := NewSessionService(nil)

	t.Run("given and family names", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"given_name":  "Lina",
			"family_name": "Haddad",
			"email":       "lina@horizon.example",
		})
		require.Equal(t, "Lina Haddad", svc.Decode(token).Name)
	})

	t.Run("email as last resort", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"email": "only@horizon.example"})
		require.Equal(t, "only@horizon.example", svc.Decode(token).Name)
	})
}

func TestSessionAdminHasNoBackdoor(t *testing.T) {
	svc := NewSessionService(nil)
	// A token with an admin-looking email but no admin role stays non-admin.
	token := signTestToken(t, jwt.MapClaims{
		"email": "admin@horizon.example",
		"role":  "Student",
	})

	session := svc.Decode(token)
	require.False(t, session.IsAdmin())
	require.True(t, session.Scoped())
}
