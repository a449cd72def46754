package reservations

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Reservation, error)
	ListByGroup(ctx context.Context, tenantID, groupID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status domain.ManagementStatus, invoicedRate *float64) error
}

// Valuer оценка бронирования в операционной валюте
type Valuer interface {
	Value(ctx context.Context, r *domain.Reservation) (*valueledger.Valuation, error)
}

// ExchangeRateProvider источник курса на сегодня (фиксируется при выставлении счета)
type ExchangeRateProvider interface {
	TodayRate(ctx context.Context, tenantID string) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
