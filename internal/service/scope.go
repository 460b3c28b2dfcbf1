package service

import (
	"strings"

	"github.com/horizon-academy/academy-gateway/internal/models"
)

// ApplyScope restricts records to the session's academy/branch subset.
// Admin-equivalent sessions always see everything. The filter is
// exclusionary only when both sides carry a comparable value: a record
// missing the scoping field entirely is retained.
func ApplyScope[T any](session *models.Session, records []T, academyID, branchID func(T) string) []T {
	if session == nil || !session.Scoped() {
		return records
	}
	if session.AcademyID == "" && session.BranchID == "" {
		return records
	}

	filtered := make([]T, 0, len(records))
	for _, record := range records {
		if excludedByScope(session.AcademyID, academyID(record)) {
			continue
		}
		if excludedByScope(session.BranchID, branchID(record)) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

func excludedByScope(sessionID, recordID string) bool {
	if sessionID == "" || recordID == "" {
		return false
	}
	return !strings.EqualFold(sessionID, recordID)
}
