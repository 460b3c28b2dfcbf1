// Package upstream implements the gateway's view of the legacy academy REST
// API: a thin HTTP client plus the normalization pipeline (field resolution,
// collection unwrapping, endpoint fallback) that turns its inconsistent
// payloads into stable records.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

type tokenKey struct{}

// WithBearer returns a context carrying the caller's bearer token. Every
// outgoing request reads the token at call time, so a token change never
// applies retroactively to requests already sent.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// BearerFrom extracts the bearer token from the context, if any.
func BearerFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

// StatusError reports a non-2xx upstream response. Message is mined from the
// error body when one of the conventional shapes is present.
type StatusError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

// IsNotFound reports whether err is an upstream 404. The fallback chain
// treats 404 as "route not deployed", not "request invalid".
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// RequestObserver receives one callback per completed upstream request.
// Transport failures report status 0.
type RequestObserver func(method, path string, status int, duration time.Duration)

// Client talks to the legacy academy API.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer RequestObserver
}

// NewClient constructs an upstream client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetObserver installs a request observer. Not safe to call once requests
// are in flight; install during wiring.
func (c *Client) SetObserver(obs RequestObserver) {
	c.observer = obs
}

// BaseURL exposes the configured upstream root, used by diagnostics.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET and decodes the response body as arbitrary JSON.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	return c.do(req)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}
	_, err = c.do(req)
	return err
}

// FilePart describes an optional multipart attachment.
type FilePart struct {
	FieldName string
	FileName  string
	Content   []byte
}

// PostMultipart issues a POST with form fields and an optional file part.
// Field order is fixed so request construction stays deterministic.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FilePart) (interface{}, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", name, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode upstream payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (interface{}, error) {
	req.Header.Set("Accept", "application/json")
	if token := BearerFrom(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observer != nil {
			c.observer(req.Method, req.URL.Path, 0, time.Since(start))
		}
		c.logger.Warn("upstream request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, fmt.Errorf("upstream %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if c.observer != nil {
		c.observer(req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	c.logger.Debug("upstream request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: ExtractMessage(raw)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return decoded, nil
}

// ExtractMessage mines a human-readable message out of an upstream error
// body. The legacy API is inconsistent: errors arrive as {message}, {error},
// {title} or {errors: {field: [messages]}} depending on the route.
func ExtractMessage(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	for _, key := range []string{"message", "error", "title"} {
		if s, ok := body[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	fieldErrors, ok := body["errors"].(map[string]interface{})
	if !ok {
		return ""
	}
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var parts []string
	for _, field := range fields {
		switch v := fieldErrors[field].(type) {
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					parts = append(parts, fmt.Sprintf("%s: %s", field, s))
				}
			}
		case string:
			if v != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", field, v))
			}
		}
	}
	return strings.Join(parts, "; ")
}
