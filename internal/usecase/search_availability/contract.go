package search_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// AvailabilityResolver интерфейс расчета свободных юнитов
type AvailabilityResolver interface {
	Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error)
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
