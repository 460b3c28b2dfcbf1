package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

// mapUpstreamError converts a raw upstream failure into the gateway's typed
// error taxonomy. 4xx statuses are caller-correctable and keep the specific
// mined message; 5xx collapses to a generic retry message so legacy stack
// traces never leak to clients.
func mapUpstreamError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se *upstream.StatusError
	if !errors.As(err, &se) {
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}

	switch {
	case se.Status == http.StatusBadRequest:
		return appErrors.Clone(appErrors.ErrValidation, se.Message)
	case se.Status == http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, "session expired, sign in again")
	case se.Status == http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, se.Message)
	case se.Status == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMessage)
	case se.Status == http.StatusConflict:
		return appErrors.Clone(appErrors.ErrConflict, se.Message)
	case se.Status >= http.StatusInternalServerError:
		return appErrors.Wrap(se, appErrors.ErrUpstreamFailed.Code, appErrors.ErrUpstreamFailed.Status, appErrors.ErrUpstreamFailed.Message)
	default:
		return appErrors.Wrap(se, appErrors.ErrUpstreamFailed.Code, appErrors.ErrUpstreamFailed.Status, se.Message)
	}
}

// stripEmptyFields drops entries whose value is empty after trimming or the
// literal placeholder "id" the legacy forms use for unselected references.
// The legacy API treats a present-but-empty key as a value, not an omission,
// so omission has to happen here.
func stripEmptyFields(payload map[string]string) map[string]string {
	clean := make(map[string]string, len(payload))
	for key, value := range payload {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" || trimmed == "id" {
			continue
		}
		clean[key] = trimmed
	}
	return clean
}
