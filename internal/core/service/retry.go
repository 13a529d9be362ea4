package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/delivery-zones/internal/core/domain"
	"github.com/99minutos/delivery-zones/internal/core/ports"
)

const defaultRetryBackoff = 200 * time.Millisecond

// retryingDeliveryAreaService retries Verify on ErrServiceUnavailable. User
// input and configuration errors are returned immediately.
type retryingDeliveryAreaService struct {
	inner   ports.DeliveryAreaService
	retries int
	backoff time.Duration
	log     zerolog.Logger
}

// NewRetryingDeliveryAreaService wraps inner with up to retries extra attempts
// and linear backoff. With retries <= 0 inner is returned unchanged.
func NewRetryingDeliveryAreaService(inner ports.DeliveryAreaService, retries int, backoff time.Duration, log zerolog.Logger) ports.DeliveryAreaService {
	if retries <= 0 {
		return inner
	}
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &retryingDeliveryAreaService{
		inner:   inner,
		retries: retries,
		backoff: backoff,
		log:     log,
	}
}

func (r *retryingDeliveryAreaService) Verify(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		res, err := r.inner.Verify(ctx, q, day)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrServiceUnavailable) || attempt == r.retries {
			break
		}

		r.log.Warn().Err(err).Int("attempt", attempt+1).Int("max_attempts", r.retries+1).Msg("verify retry")

		select {
		case <-ctx.Done():
			return nil, domain.NewUnavailableError(msgRetryLater, ctx.Err())
		case <-time.After(time.Duration(attempt+1) * r.backoff):
		}
	}
	return nil, lastErr
}
