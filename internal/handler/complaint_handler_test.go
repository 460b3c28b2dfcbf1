package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/pkg/config"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

func newComplaintHandler(stub *upstreamStub) *ComplaintHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	cfg := config.ComplaintsConfig{MinDescriptionLength: 10, MaxAttachmentBytes: 1 << 20}
	return NewComplaintHandler(service.NewComplaintService(stub, cache, nil, cfg, 0, nil))
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestComplaintHandlerSubmitShortDescription(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &upstreamStub{responses: map[string]interface{}{}, errs: map[string]error{}}
	handler := newComplaintHandler(stub)

	body, contentType := multipartBody(t, map[string]string{
		"description": "too short",
		"type_id":     "T1",
		"student_id":  "S1",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/complaints", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}

func TestComplaintHandlerSubmitCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &upstreamStub{
		responses: map[string]interface{}{
			"/api/Complaints": map[string]interface{}{"id": "C1", "description": "projector is broken"},
		},
		errs: map[string]error{},
	}
	handler := newComplaintHandler(stub)

	body, contentType := multipartBody(t, map[string]string{
		"description": "projector is broken",
		"type_id":     "T1",
		"student_id":  "S1",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/complaints", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
}
