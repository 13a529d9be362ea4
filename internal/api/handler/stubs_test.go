package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Services
// ---------------------------------------------------------------------------

type stubDeliveryAreaService struct {
	verifyFn func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error)

	gotQuery domain.AddressQuery
	gotDay   domain.WeekDay
	calls    int
}

func (s *stubDeliveryAreaService) Verify(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
	s.calls++
	s.gotQuery = q
	s.gotDay = day
	return s.verifyFn(ctx, q, day)
}

type stubResolver struct {
	resolveFn     func(ctx context.Context, q domain.AddressQuery) (*domain.ResolvedAddress, error)
	suggestionsFn func(ctx context.Context, query, city string) ([]domain.Suggestion, error)
	placeFn       func(ctx context.Context, placeID string) (*domain.ResolvedAddress, error)
}

func (s *stubResolver) Resolve(ctx context.Context, q domain.AddressQuery) (*domain.ResolvedAddress, error) {
	return s.resolveFn(ctx, q)
}

func (s *stubResolver) Suggestions(ctx context.Context, query, city string) ([]domain.Suggestion, error) {
	return s.suggestionsFn(ctx, query, city)
}

func (s *stubResolver) ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error) {
	return s.placeFn(ctx, placeID)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func corrientes() *domain.ResolvedAddress {
	return &domain.ResolvedAddress{
		FormattedAddress: "Av. Corrientes 1234, C1043 CABA, Argentina",
		Components:       domain.AddressComponents{Street: "Avenida Corrientes", StreetNumber: "1234", City: "Buenos Aires", PostalCode: "C1043"},
		Coordinate:       domain.Coordinate{Lat: -34.6037, Lng: -58.3857},
		PlaceID:          "ChIJcorrientes1234",
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
