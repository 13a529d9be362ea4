package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
	"github.com/99minutos/delivery-zones/internal/pkg/metrics"
)

const msgZonesUnavailable = "delivery areas are temporarily unavailable"

// DeliveryAreaService resolves an address and matches it against the current
// zone snapshot. It holds no per-request state and is safe for concurrent use.
type DeliveryAreaService struct {
	resolver ports.AddressResolver
	zones    ports.ZoneRepository
	log      zerolog.Logger
}

func NewDeliveryAreaService(resolver ports.AddressResolver, zones ports.ZoneRepository, log zerolog.Logger) *DeliveryAreaService {
	return &DeliveryAreaService{
		resolver: resolver,
		zones:    zones,
		log:      log.With().Str("component", "delivery_area_service").Logger(),
	}
}

// Verify returns the zones serving the queried address on day. An empty
// MatchedZones is a valid answer; errors are *domain.ServiceError.
func (s *DeliveryAreaService) Verify(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
	start := time.Now()

	if !day.Valid() {
		err := domain.NewUserInputError(fmt.Sprintf("unknown week day %q", day), nil)
		s.observe(start, err, nil)
		return nil, err
	}

	addr, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		s.observe(start, err, nil)
		return nil, fmt.Errorf("verify: %w", err)
	}

	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load delivery areas")
		svcErr := domain.NewUnavailableError(msgZonesUnavailable, err)
		s.observe(start, svcErr, nil)
		return nil, fmt.Errorf("verify: %w", svcErr)
	}

	index := NewPolygonIndex(zones)
	if skipped := index.Skipped(); len(skipped) > 0 {
		s.log.Warn().Strs("zone_ids", skipped).Msg("zones with unusable polygons excluded from geometric matching")
	}

	result := NewZoneMatcher(index).Match(*addr, day)
	s.observe(start, nil, &result)

	s.log.Info().
		Str("formatted_address", addr.FormattedAddress).
		Bool("partial_match", addr.IsPartialMatch).
		Str("day", string(day)).
		Int("zones_enabled", index.Len()).
		Int("zones_matched", len(result.MatchedZones)).
		Msg("delivery area verified")

	return &result, nil
}

func (s *DeliveryAreaService) observe(start time.Time, err error, result *domain.ZoneMatchResult) {
	outcome := "not_served"
	switch {
	case errors.Is(err, domain.ErrUserInput):
		outcome = "user_error"
	case errors.Is(err, domain.ErrConfiguration):
		outcome = "configuration"
	case err != nil:
		outcome = "unavailable"
	case result != nil && result.Served():
		outcome = "served"
	}
	if result != nil {
		metrics.ZoneMatchesTotal.WithLabelValues(string(result.QueryDay), outcome).Inc()
	}
	metrics.VerifyDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
