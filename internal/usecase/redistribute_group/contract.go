package redistribute_group

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListByGroup(ctx context.Context, tenantID, groupID string) ([]domain.Reservation, error)
	UpdateActualValues(ctx context.Context, res *domain.Reservation) error
}

// ValuationConverter переводит итог из операционной валюты в валюту оценки группы
type ValuationConverter interface {
	ToValuationCurrency(ctx context.Context, group []domain.Reservation, total float64) (float64, float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
