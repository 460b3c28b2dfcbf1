package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newSessionRouter(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(service.NewSessionService(nil)))
	router.Use(extra...)
	router.GET("/probe", handler)
	return router
}

func TestSessionMiddlewareResolvesBearer(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"email": "dana@horizon.example", "role": "Student"})

	router := newSessionRouter(func(c *gin.Context) {
		session := SessionFrom(c)
		require.True(t, session.Authenticated)
		require.Equal(t, "dana@horizon.example", session.Email)
		require.Equal(t, token, upstream.BearerFrom(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestSessionMiddlewareFailsClosedToAnonymous(t *testing.T) {
	router := newSessionRouter(func(c *gin.Context) {
		session := SessionFrom(c)
		require.False(t, session.Authenticated)
		require.Empty(t, upstream.BearerFrom(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRequireSessionBlocksAnonymous(t *testing.T) {
	router := newSessionRouter(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}, RequireSession())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAdmin(t *testing.T) {
	router := newSessionRouter(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}, RequireAdmin())

	t.Run("student is forbidden", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"email": "dana@horizon.example", "role": "Student"})
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("manager passes", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"email": "ops@horizon.example", "role": "Manager"})
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("admin-looking email without the role is forbidden", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"email": "admin@horizon.example", "role": "Student"})
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
