package ports

import (
	"context"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// ZoneRepository reads a consistent snapshot of the configured delivery
// areas, in administrator order.
type ZoneRepository interface {
	ListZones(ctx context.Context) ([]domain.DeliveryArea, error)
}
