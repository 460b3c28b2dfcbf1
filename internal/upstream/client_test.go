package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	ctx := WithBearer(context.Background(), "abc123")

	_, err := client.GetJSON(ctx, "/api/branches", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClientStatusErrorCarriesMinedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already registered"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.PostJSON(context.Background(), "/api/students", map[string]string{"email": "x"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, "email already registered", se.Message)
}

func TestClientEmptyBodySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Delete(context.Background(), "/api/branches/1")
	require.NoError(t, err)
}

func TestClientCancelledContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewClient(srv.URL, 5*time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetJSON(ctx, "/api/academies", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMessageShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"bad input"}`, "bad input"},
		{"error key", `{"error":"broken"}`, "broken"},
		{"title key", `{"title":"One or more validation errors occurred."}`, "One or more validation errors occurred."},
		{"field map", `{"errors":{"Email":["required"],"Phone":["too short"]}}`, "Email: required; Phone: too short"},
		{"not json", `<html>boom</html>`, ""},
		{"empty object", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractMessage([]byte(tc.body)))
		})
	}
}
