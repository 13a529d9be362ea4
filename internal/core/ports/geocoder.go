package ports

import (
	"context"
	"time"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// MaxSuggestions caps the number of autocomplete suggestions returned.
const MaxSuggestions = 5

// Geocoder wraps the external geocoding/places provider. Failures are
// reported as *domain.GeocodeError.
type Geocoder interface {
	// Geocode converts free text (optionally biased by city) into the best
	// single candidate.
	Geocode(ctx context.Context, address, city string) (*domain.ResolvedAddress, error)
	// Autocomplete returns at most MaxSuggestions suggestions ordered by
	// provider relevance. Zero results yield an empty slice, not an error.
	Autocomplete(ctx context.Context, query, city string) ([]domain.Suggestion, error)
	// ResolvePlace fetches full details for a previously suggested place.
	ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error)
}

// GeocodeCache memoizes resolved addresses by normalized key. A miss returns
// (nil, false, nil).
type GeocodeCache interface {
	Get(ctx context.Context, key string) (*domain.ResolvedAddress, bool, error)
	Put(ctx context.Context, key string, value *domain.ResolvedAddress, ttl time.Duration) error
}
