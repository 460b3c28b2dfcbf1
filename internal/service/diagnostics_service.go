package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/upstream"
	"github.com/horizon-academy/academy-gateway/pkg/config"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

type diagnosticsAPI interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
}

// PathsReport summarizes the routes the legacy backend advertises.
type PathsReport struct {
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

// ProbeResult records one probe against a legacy route.
type ProbeResult struct {
	Path      string `json:"path"`
	OK        bool   `json:"ok"`
	Status    int    `json:"status,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// DiagnosticsService inspects the legacy backend: which routes it
// advertises, and whether a given set of routes responds.
type DiagnosticsService struct {
	api    diagnosticsAPI
	cfg    config.DiagnosticsConfig
	logger *zap.Logger
}

// NewDiagnosticsService constructs a DiagnosticsService.
func NewDiagnosticsService(api diagnosticsAPI, cfg config.DiagnosticsConfig, logger *zap.Logger) *DiagnosticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	return &DiagnosticsService{api: api, cfg: cfg, logger: logger}
}

// Paths lists the routes the backend advertises. It prefers the dedicated
// paths endpoint and falls back to mining the swagger document itself.
func (s *DiagnosticsService) Paths(ctx context.Context) (*PathsReport, error) {
	body, err := s.api.GetJSON(ctx, "/api/swagger/paths", nil)
	if err != nil {
		if !upstream.IsNotFound(err) {
			return nil, mapUpstreamError(err, "swagger paths not found")
		}
		body, err = s.api.GetJSON(ctx, "/swagger/v1/swagger.json", nil)
		if err != nil {
			return nil, mapUpstreamError(err, "swagger document not found")
		}
	}

	paths := extractPaths(body)
	sort.Strings(paths)
	return &PathsReport{Count: len(paths), Paths: paths}, nil
}

// Probe issues one GET per path and records status and latency. Probe
// failures are results, not errors; only an empty target list errors.
func (s *DiagnosticsService) Probe(ctx context.Context, paths []string) ([]ProbeResult, error) {
	if len(paths) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no probe targets given")
	}

	results := make([]ProbeResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, s.probeOne(ctx, path))
	}
	return results, nil
}

func (s *DiagnosticsService) probeOne(ctx context.Context, path string) ProbeResult {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	_, err := s.api.GetJSON(probeCtx, path, nil)
	latency := time.Since(start).Milliseconds()

	result := ProbeResult{Path: path, LatencyMS: latency}
	if err == nil {
		result.OK = true
		result.Status = http.StatusOK
		return result
	}

	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		result.Status = statusErr.Status
		result.Error = statusErr.Message
	} else {
		result.Error = err.Error()
	}
	s.logger.Debug("probe failed", zap.String("path", path), zap.Error(err))
	return result
}

// extractPaths handles both the dedicated endpoint shape ({count, paths})
// and a raw swagger document ({paths: {"/route": {...}}}).
func extractPaths(body interface{}) []string {
	doc, ok := body.(map[string]interface{})
	if !ok {
		return []string{}
	}

	if raw, ok := doc["paths"]; ok {
		switch typed := raw.(type) {
		case []interface{}:
			paths := make([]string, 0, len(typed))
			for _, entry := range typed {
				if path, ok := entry.(string); ok && path != "" {
					paths = append(paths, path)
				}
			}
			return paths
		case map[string]interface{}:
			paths := make([]string, 0, len(typed))
			for path := range typed {
				paths = append(paths, path)
			}
			return paths
		}
	}
	return []string{}
}
