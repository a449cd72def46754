package exchangerate

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Cache кэш курсов (Redis)
type Cache interface {
	Get(ctx context.Context, tenantID string, day types.Date) (float64, bool, error)
	Set(ctx context.Context, tenantID string, day types.Date, rate float64, ttl time.Duration) error
}

// Repository хранилище курсов (PostgreSQL)
type Repository interface {
	Get(ctx context.Context, tenantID string, day types.Date) (float64, error)
	Upsert(ctx context.Context, tenantID string, day types.Date, rate float64) error
}

// APIClient клиент внешнего API курсов
type APIClient interface {
	GetRate(ctx context.Context, day types.Date) (float64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
