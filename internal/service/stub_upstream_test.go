package service

import (
	"context"
	"net/url"

	"github.com/horizon-academy/academy-gateway/internal/upstream"
)

// stubUpstream fakes the legacy API per path. Responses and errors are keyed
// by path; every call is recorded in order.
type stubUpstream struct {
	responses map[string]interface{}
	errs      map[string]error
	calls     []string
	sent      map[string]interface{}

	multipartPath   string
	multipartFields map[string]string
	multipartFile   *upstream.FilePart
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{
		responses: make(map[string]interface{}),
		errs:      make(map[string]error),
		sent:      make(map[string]interface{}),
	}
}

func (s *stubUpstream) GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.calls = append(s.calls, path)
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *stubUpstream) PostJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	s.calls = append(s.calls, path)
	s.sent[path] = body
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *stubUpstream) PutJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	s.calls = append(s.calls, path)
	s.sent[path] = body
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *stubUpstream) Delete(ctx context.Context, path string) error {
	s.calls = append(s.calls, path)
	return s.errs[path]
}

func (s *stubUpstream) PostMultipart(ctx context.Context, path string, fields map[string]string, file *upstream.FilePart) (interface{}, error) {
	s.calls = append(s.calls, path)
	s.multipartPath = path
	s.multipartFields = fields
	s.multipartFile = file
	if err := s.errs[path]; err != nil {
		return nil, err
	}
	return s.responses[path], nil
}

func (s *stubUpstream) called(path string) bool {
	for _, call := range s.calls {
		if call == path {
			return true
		}
	}
	return false
}

func notFoundErr() error {
	return &upstream.StatusError{Status: 404}
}
