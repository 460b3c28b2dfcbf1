package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

func studentSession(academyID, branchID string) *models.Session {
	return &models.Session{
		Authenticated: true,
		Roles:         []string{"Student"},
		AcademyID:     academyID,
		BranchID:      branchID,
	}
}

func TestApplyScopeRetainsRecordsMissingTheField(t *testing.T) {
	records := []models.Academy{
		{ID: "A1", Name: "Kept"},
		{ID: "A2", Name: "Dropped"},
		{ID: "", Name: "Unscoped"},
	}

	filtered := ApplyScope(studentSession("A1", ""), records,
		func(a models.Academy) string { return a.ID },
		func(models.Academy) string { return "" },
	)

	require.Len(t, filtered, 2)
	require.Equal(t, "Kept", filtered[0].Name)
	require.Equal(t, "Unscoped", filtered[1].Name)
}

func TestApplyScopeComparesCaseInsensitively(t *testing.T) {
	records := []models.Branch{{ID: "B1", AcademyID: "ac-9"}}

	filtered := ApplyScope(studentSession("AC-9", ""), records,
		func(b models.Branch) string { return b.AcademyID },
		func(b models.Branch) string { return "" },
	)
	require.Len(t, filtered, 1)
}

func TestApplyScopeAdminSeesEverything(t *testing.T) {
	admin := &models.Session{Authenticated: true, Roles: []string{"Admin", "Student"}, AcademyID: "A1"}
	records := []models.Academy{{ID: "A1"}, {ID: "A2"}}

	filtered := ApplyScope(admin, records,
		func(a models.Academy) string { return a.ID },
		func(models.Academy) string { return "" },
	)
	require.Len(t, filtered, 2)
}

func TestApplyScopeWithoutScopeIDsPassesThrough(t *testing.T) {
	records := []models.Academy{{ID: "A1"}, {ID: "A2"}}

	filtered := ApplyScope(studentSession("", ""), records,
		func(a models.Academy) string { return a.ID },
		func(models.Academy) string { return "" },
	)
	require.Len(t, filtered, 2)
}
