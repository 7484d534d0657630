package rates

import (
	"context"
	"sync"
	"time"

	"github.com/legacyframe/storefront/pkg/logger"
	"github.com/legacyframe/storefront/pkg/metrics"
)

// Service holds the most recent dollar value. A nil value means no fetch has
// succeeded yet; callers render a placeholder in that case.
type Service interface {
	Dollar() *float64
	Refresh(ctx context.Context)
}

type service struct {
	client  Client
	logg    *logger.Logger
	metrics *metrics.SyncMetrics

	mu     sync.RWMutex
	dollar *float64
}

// NewService builds the exchange-rate holder.
func NewService(client Client, logg *logger.Logger, m *metrics.SyncMetrics) Service {
	return &service{client: client, logg: logg, metrics: m}
}

func (s *service) Dollar() *float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dollar == nil {
		return nil
	}
	value := *s.dollar
	return &value
}

// Refresh fetches the indicator once. Failures are logged and swallowed; the
// previous value, if any, stays available.
func (s *service) Refresh(ctx context.Context) {
	started := time.Now()
	value, err := s.client.DollarValue(ctx)
	s.metrics.ObserveDuration("rates", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("rates")
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "dollar indicator unavailable")
		}
		return
	}
	s.metrics.IncSuccess("rates")

	s.mu.Lock()
	s.dollar = &value
	s.mu.Unlock()
}
