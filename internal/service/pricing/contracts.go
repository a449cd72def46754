package pricing

import (
	"context"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ExchangeRateProvider источник курса "CLP за 1 USD" на дату
type ExchangeRateProvider interface {
	RateFor(ctx context.Context, tenantID string, day types.Date) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
