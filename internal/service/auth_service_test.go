package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

func newAuthService(api *stubUpstream) *AuthService {
	return NewAuthService(api, NewSessionService(nil), nil, nil)
}

func TestLoginExtractsTokenVariants(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"email": "dana@horizon.example", "role": "Student"})

	cases := map[string]interface{}{
		"top-level token": map[string]interface{}{"token": token},
		"accessToken":     map[string]interface{}{"accessToken": token},
		"nested data":     map[string]interface{}{"data": map[string]interface{}{"token": token}},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			api := newStubUpstream()
			api.responses["/api/Account/Login"] = body

			result, err := newAuthService(api).Login(context.Background(), LoginRequest{
				Email: "dana@horizon.example", Password: "secret",
			})
			require.NoError(t, err)
			require.Equal(t, token, result.Token)
			require.True(t, result.Session.Authenticated)
			require.Equal(t, "dana@horizon.example", result.Session.Email)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newStubUpstream()
	api.errs["/api/Account/Login"] = &upstream.StatusError{Status: 401}

	_, err := newAuthService(api).Login(context.Background(), LoginRequest{
		Email: "dana@horizon.example", Password: "wrong",
	})
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginTokenlessResponseIsAnError(t *testing.T) {
	api := newStubUpstream()
	api.responses["/api/Account/Login"] = map[string]interface{}{"success": true}

	_, err := newAuthService(api).Login(context.Background(), LoginRequest{
		Email: "dana@horizon.example", Password: "secret",
	})
	require.Equal(t, appErrors.ErrUpstreamPayload.Code, appErrors.FromError(err).Code)
}

func TestRegisterStripsEmptyFieldsAndLogsIn(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{"email": "new@horizon.example"})
	api := newStubUpstream()
	api.responses["/api/Account/Register"] = map[string]interface{}{"success": true}
	api.responses["/api/Account/Login"] = map[string]interface{}{"token": token}

	result, err := newAuthService(api).Register(context.Background(), RegisterRequest{
		FirstName:       "New",
		LastName:        "User",
		Email:           "new@horizon.example",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AcademyID:       "id", // unselected reference placeholder
	})
	require.NoError(t, err)
	require.Equal(t, token, result.Token)

	payload, ok := api.sent["/api/Account/Register"].(map[string]string)
	require.True(t, ok)
	require.NotContains(t, payload, "phone")
	require.NotContains(t, payload, "academyId")
	require.NotContains(t, payload, "branchId")
	require.NotContains(t, payload, "role")
	require.True(t, api.called("/api/Account/Login"))
}

func TestRegisterMismatchedPasswordsFailBeforeNetwork(t *testing.T) {
	api := newStubUpstream()

	_, err := newAuthService(api).Register(context.Background(), RegisterRequest{
		FirstName:       "New",
		LastName:        "User",
		Email:           "new@horizon.example",
		Password:        "secret1",
		ConfirmPassword: "different",
	})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Empty(t, api.calls)
}
