package valueledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ExchangeRateProvider источник курса "CLP за 1 USD"
type ExchangeRateProvider interface {
	RateFor(ctx context.Context, tenantID string, day types.Date) (float64, error)
	TodayRate(ctx context.Context, tenantID string) (float64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
