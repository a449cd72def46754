package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// AvailabilityResolver интерфейс получения снимка доступности
type AvailabilityResolver interface {
	Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error)
}

// ChannelRepository интерфейс репозитория каналов продаж
type ChannelRepository interface {
	ListChannels(ctx context.Context, tenantID string) ([]domain.Channel, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CheckConflict(ctx context.Context, tenantID, unitID string, rng domain.DateRange, statuses []domain.ManagementStatus) (bool, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// PricingEngine интерфейс движка цен
type PricingEngine interface {
	Price(ctx context.Context, req pricing.Request) (*pricing.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
