package ports

import (
	"context"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// AddressResolver turns user input into a canonical ResolvedAddress.
type AddressResolver interface {
	Resolve(ctx context.Context, query domain.AddressQuery) (*domain.ResolvedAddress, error)
	// Suggestions never fails on zero results; it returns an empty slice.
	Suggestions(ctx context.Context, query, city string) ([]domain.Suggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (*domain.ResolvedAddress, error)
}

// DeliveryAreaService is the entry point used by the HTTP layer.
type DeliveryAreaService interface {
	// Verify resolves the address and returns the zones serving it on day.
	// Errors are *domain.ServiceError values.
	Verify(ctx context.Context, query domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error)
}
