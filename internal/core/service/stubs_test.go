package service

import (
	"context"
	"sync"
	"time"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubGeocoder struct {
	mu sync.Mutex

	geocodeFn      func(ctx context.Context, address, city string) (*domain.ResolvedAddress, error)
	autocompleteFn func(ctx context.Context, query, city string) ([]domain.Suggestion, error)
	placeFn        func(ctx context.Context, placeID string) (*domain.ResolvedAddress, error)

	geocodeCalls      int
	autocompleteCalls int
	placeCalls        int
}

func (g *stubGeocoder) Geocode(ctx context.Context, address, city string) (*domain.ResolvedAddress, error) {
	g.mu.Lock()
	g.geocodeCalls++
	g.mu.Unlock()
	if g.geocodeFn == nil {
		return nil, &domain.GeocodeError{Failure: domain.FailureNotFound, Status: "ZERO_RESULTS"}
	}
	return g.geocodeFn(ctx, address, city)
}

func (g *stubGeocoder) Autocomplete(ctx context.Context, query, city string) ([]domain.Suggestion, error) {
	g.mu.Lock()
	g.autocompleteCalls++
	g.mu.Unlock()
	if g.autocompleteFn == nil {
		return nil, nil
	}
	return g.autocompleteFn(ctx, query, city)
}

func (g *stubGeocoder) ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error) {
	g.mu.Lock()
	g.placeCalls++
	g.mu.Unlock()
	if g.placeFn == nil {
		return nil, &domain.GeocodeError{Failure: domain.FailureNotFound, Status: "NOT_FOUND"}
	}
	return g.placeFn(ctx, placeID)
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string]domain.ResolvedAddress
	getErr  error
	putErr  error
	puts    []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]domain.ResolvedAddress)}
}

func (c *stubCache) Get(_ context.Context, key string) (*domain.ResolvedAddress, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *stubCache) Put(_ context.Context, key string, value *domain.ResolvedAddress, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[key] = *value
	c.puts = append(c.puts, key)
	return nil
}

type stubZoneRepo struct {
	zones []domain.DeliveryArea
	err   error
	calls int
}

func (r *stubZoneRepo) ListZones(_ context.Context) ([]domain.DeliveryArea, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.zones, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// corrientes1234 is the geocoded position of "Av. Corrientes 1234, CABA".
var corrientes1234 = domain.Coordinate{Lat: -34.6037, Lng: -58.3857}

// boxAround returns a rectangle polygon of half-size d degrees centred on c.
func boxAround(c domain.Coordinate, d float64) []domain.Coordinate {
	return []domain.Coordinate{
		{Lat: c.Lat - d, Lng: c.Lng - d},
		{Lat: c.Lat - d, Lng: c.Lng + d},
		{Lat: c.Lat + d, Lng: c.Lng + d},
		{Lat: c.Lat + d, Lng: c.Lng - d},
	}
}

func zone(id string, poly []domain.Coordinate, days ...domain.WeekDay) domain.DeliveryArea {
	return domain.DeliveryArea{
		ID:         id,
		Name:       "Zone " + id,
		Polygon:    poly,
		ActiveDays: days,
		Enabled:    true,
	}
}

func corrientesResult() *domain.ResolvedAddress {
	return &domain.ResolvedAddress{
		FormattedAddress: "Av. Corrientes 1234, C1043 CABA, Argentina",
		Components: domain.AddressComponents{
			Street:       "Avenida Corrientes",
			StreetNumber: "1234",
			City:         "Buenos Aires",
			Country:      "Argentina",
			PostalCode:   "C1043",
		},
		Coordinate: corrientes1234,
		PlaceID:    "ChIJcorrientes1234",
	}
}
