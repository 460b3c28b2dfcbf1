package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

type academyFetcher interface {
	GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error)
}

// Candidate key orders for academy fields. First non-empty wins; the order
// is fixed so a record always resolves the same way.
var (
	academyIDKeys      = []string{"id", "Id", "ID", "academyId", "AcademyId"}
	academyNameKeys    = []string{"academyNameL1", "AcademyNameL1", "name", "Name", "academyName"}
	academyNameAltKeys = []string{"academyNameL2", "AcademyNameL2", "nameL2", "NameL2"}
	academyDescKeys    = []string{"description", "Description", "academyDescription"}
	academyEmailKeys   = []string{"email", "Email", "academyEmail"}
	academyPhoneKeys   = []string{"phone", "Phone", "mobile", "Mobile"}
	academyAddressKeys = []string{"address", "Address"}
)

const unnamedAcademy = "Unnamed academy"

// AcademyService resolves academies from the legacy API.
type AcademyService struct {
	api    academyFetcher
	logger *zap.Logger
}

// NewAcademyService constructs an AcademyService.
func NewAcademyService(api academyFetcher, logger *zap.Logger) *AcademyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademyService{api: api, logger: logger}
}

// List returns all academies visible to the session. The preferred route is
// the newer /api/Academies; older deployments only serve /api/Academy/GetAll.
func (s *AcademyService) List(ctx context.Context, session *models.Session) ([]models.Academy, error) {
	records, err := upstream.ResolveList(
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Academies", nil) },
		func() (interface{}, error) { return s.api.GetJSON(ctx, "/api/Academy/GetAll", nil) },
	)
	if err != nil {
		return nil, mapUpstreamError(err, "academies not found")
	}

	academies := make([]models.Academy, 0, len(records))
	for _, rec := range records {
		academies = append(academies, mapAcademy(rec))
	}

	return ApplyScope(session, academies,
		func(a models.Academy) string { return a.ID },
		func(models.Academy) string { return "" },
	), nil
}

// Get returns a single academy.
func (s *AcademyService) Get(ctx context.Context, id string) (*models.Academy, error) {
	body, err := s.api.GetJSON(ctx, "/api/Academies/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, mapUpstreamError(err, "academy not found")
	}
	// Some deployments wrap single objects in the list envelope.
	rec, ok := upstream.UnwrapRecord(body)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUpstreamPayload, "academy payload has no recognizable shape")
	}
	academy := mapAcademy(rec)
	return &academy, nil
}

func mapAcademy(rec upstream.Record) models.Academy {
	return models.Academy{
		ID:          rec.Field(academyIDKeys, ""),
		Name:        rec.Field(academyNameKeys, unnamedAcademy),
		NameAlt:     rec.Field(academyNameAltKeys, ""),
		Description: rec.Field(academyDescKeys, ""),
		Email:       rec.Field(academyEmailKeys, ""),
		Phone:       rec.Field(academyPhoneKeys, ""),
		Address:     rec.Field(academyAddressKeys, ""),
	}
}
