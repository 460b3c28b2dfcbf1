package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// upstreamStub fakes the legacy API per path for handler-level tests.
type upstreamStub struct {
	responses map[string]interface{}
	errs      map[string]error
}

func (s *upstreamStub) GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *upstreamStub) PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *upstreamStub) PutJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return s.responses[path], s.errs[path]
}

func (s *upstreamStub) Delete(ctx context.Context, path string) error {
	return s.errs[path]
}

func (s *upstreamStub) PostMultipart(ctx context.Context, path string, fields map[string]string, file *upstream.FilePart) (interface{}, error) {
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func TestAcademyHandlerListWrapsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &upstreamStub{
		responses: map[string]interface{}{
			"/api/Academies": []interface{}{
				map[string]interface{}{"id": "A1", "academyNameL1": "Horizon Main"},
			},
		},
		errs: map[string]error{},
	}
	handler := NewAcademyHandler(service.NewAcademyService(stub, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/academies", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Nil(t, envelope.Error)

	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
}

func TestAcademyHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &upstreamStub{
		responses: map[string]interface{}{},
		errs:      map[string]error{"/api/Academies/missing": &upstream.StatusError{Status: 404}},
	}
	handler := NewAcademyHandler(service.NewAcademyService(stub, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/academies/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}
