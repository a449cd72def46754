package availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	ListUnits(ctx context.Context, tenantID string) ([]domain.Unit, error)
}

// RateRepository интерфейс репозитория тарифов
type RateRepository interface {
	ListRates(ctx context.Context, tenantID string) ([]domain.RateEntry, error)
}

// OccupancyRepository интерфейс журнала бронирований (только чтение занятости)
type OccupancyRepository interface {
	ListBlockingOccupancy(ctx context.Context, tenantID string, r domain.DateRange, statuses []domain.ManagementStatus) ([]domain.OccupancyInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
