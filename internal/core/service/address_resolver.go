package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
	"github.com/99minutos/delivery-zones/internal/pkg/metrics"
)

// User-facing messages. Only ErrUserInput messages ever reach end users.
const (
	msgAddressRequired  = "an address, place id or postal code is required"
	msgAddressNotFound  = "the address could not be found, please check that it is correct"
	msgAddressInvalid   = "the address is not valid, please check its format"
	msgPlaceNotFound    = "the selected address is no longer available, please search again"
	msgCoordinateRange  = "coordinates are out of range"
	msgRetryLater       = "the address service is temporarily unavailable"
	msgNotConfigured    = "the address service is not configured"
	msgUnexpectedResult = "unexpected response from the address provider"
)

// AddressResolver orchestrates the geocoder and the optional cache.
type AddressResolver struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	cacheTTL time.Duration
	group    singleflight.Group
	log      zerolog.Logger
}

// NewAddressResolver returns an AddressResolver. cache may be nil; a
// non-positive ttl also disables caching.
func NewAddressResolver(geocoder ports.Geocoder, cache ports.GeocodeCache, cacheTTL time.Duration, log zerolog.Logger) *AddressResolver {
	if cacheTTL <= 0 {
		cache = nil
	}
	return &AddressResolver{
		geocoder: geocoder,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With().Str("component", "address_resolver").Logger(),
	}
}

// Resolve applies the resolution policy: place id, then free text, then a
// caller-supplied coordinate, then postal code alone.
func (r *AddressResolver) Resolve(ctx context.Context, q domain.AddressQuery) (*domain.ResolvedAddress, error) {
	placeID := strings.TrimSpace(q.PlaceID)
	address := strings.TrimSpace(q.Address)
	postalCode := strings.TrimSpace(q.PostalCode)

	var (
		res *domain.ResolvedAddress
		err error
	)
	switch {
	case placeID != "":
		res, err = r.ResolvePlace(ctx, placeID)
	case address != "":
		res, err = r.cached(ctx, textCacheKey(address, q.City), func(ctx context.Context) (*domain.ResolvedAddress, error) {
			return r.geocoder.Geocode(ctx, address, strings.TrimSpace(q.City))
		})
		if err != nil {
			err = r.classify(err, msgAddressNotFound)
		}
	case q.Coordinate != nil:
		if !q.Coordinate.Valid() {
			return nil, domain.NewUserInputError(msgCoordinateRange, nil)
		}
		return &domain.ResolvedAddress{
			FormattedAddress: q.Coordinate.String(),
			Components:       domain.AddressComponents{PostalCode: postalCode},
			Coordinate:       *q.Coordinate,
		}, nil
	case postalCode != "":
		return &domain.ResolvedAddress{
			FormattedAddress: postalCode,
			Components:       domain.AddressComponents{PostalCode: postalCode},
			IsPartialMatch:   true,
		}, nil
	default:
		return nil, domain.NewUserInputError(msgAddressRequired, nil)
	}
	if err != nil {
		return nil, err
	}

	if res.Components.PostalCode == "" && postalCode != "" {
		res.Components.PostalCode = postalCode
	}
	if res.IsPartialMatch {
		r.log.Debug().Str("formatted_address", res.FormattedAddress).Msg("partial address match")
	}
	return res, nil
}

// ResolvePlace resolves a place identifier obtained from Suggestions.
func (r *AddressResolver) ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, domain.NewUserInputError(msgAddressRequired, nil)
	}
	res, err := r.cached(ctx, "place:"+placeID, func(ctx context.Context) (*domain.ResolvedAddress, error) {
		return r.geocoder.ResolvePlace(ctx, placeID)
	})
	if err != nil {
		return nil, r.classify(err, msgPlaceNotFound)
	}
	return res, nil
}

// Suggestions returns up to ports.MaxSuggestions autocomplete candidates.
func (r *AddressResolver) Suggestions(ctx context.Context, query, city string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Suggestion{}, nil
	}
	out, err := r.geocoder.Autocomplete(ctx, query, strings.TrimSpace(city))
	if err != nil {
		if ge, ok := domain.AsGeocodeError(err); ok && ge.Failure == domain.FailureNotFound {
			return []domain.Suggestion{}, nil
		}
		return nil, r.classify(err, msgAddressNotFound)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	if len(out) > ports.MaxSuggestions {
		out = out[:ports.MaxSuggestions]
	}
	return out, nil
}

// cached looks key up in the cache, otherwise runs fetch once per key across
// concurrent callers and stores the result. Cache failures only cost latency.
// The returned value is always a private copy.
func (r *AddressResolver) cached(ctx context.Context, key string, fetch func(context.Context) (*domain.ResolvedAddress, error)) (*domain.ResolvedAddress, error) {
	if r.cache != nil {
		hit, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
			r.log.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
		case ok && hit != nil:
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			cp := *hit
			return &cp, nil
		default:
			metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	// The shared call outlives any single caller; the geocoder timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		res, err := fetch(flightCtx)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, &domain.GeocodeError{Failure: domain.FailureUnavailable, Message: msgUnexpectedResult}
		}
		if r.cache != nil {
			if err := r.cache.Put(flightCtx, key, res, r.cacheTTL); err != nil {
				r.log.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
			}
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return nil, out.Err
		}
		cp := *out.Val.(*domain.ResolvedAddress)
		return &cp, nil
	}
}

// classify maps a geocoder error and raises the operator alert for
// configuration errors. It is the only place that alert is logged.
func (r *AddressResolver) classify(err error, notFoundMsg string) error {
	out := classifyGeocodeError(err, notFoundMsg)
	if errors.Is(out, domain.ErrConfiguration) {
		r.log.Error().Err(err).Str("alert", "operator").Msg("geocoding provider is misconfigured")
	}
	return out
}

// classifyGeocodeError maps the geocoder taxonomy onto the service taxonomy.
// notFoundMsg is the user message used for FailureNotFound.
func classifyGeocodeError(err error, notFoundMsg string) error {
	ge, ok := domain.AsGeocodeError(err)
	if !ok {
		return domain.NewUnavailableError(msgRetryLater, err)
	}
	switch ge.Failure {
	case domain.FailureNotFound:
		return domain.NewUserInputError(notFoundMsg, err)
	case domain.FailureInvalidInput:
		return domain.NewUserInputError(msgAddressInvalid, err)
	case domain.FailureProviderMisconfigured:
		return domain.NewConfigurationError(msgNotConfigured, err)
	case domain.FailureQuotaExceeded, domain.FailureUnavailable:
		return domain.NewUnavailableError(msgRetryLater, err)
	default:
		return domain.NewUnavailableError(msgRetryLater, err)
	}
}

// textCacheKey normalises address text and city hint into a cache key:
// lower-cased, trimmed, whitespace collapsed.
func textCacheKey(address, city string) string {
	return "text:" + normalizeKeyPart(address) + "|" + normalizeKeyPart(city)
}

func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
