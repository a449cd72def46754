package derive_values

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

type ValueCalculator interface {
	Derive(payout, commission, channelCost float64, mode domain.TaxMode, currency money.Currency) (domain.ValueSet, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
