package recalc_values

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

type ValueCalculator interface {
	Recalc(total float64, mode domain.TaxMode, commission float64, currency money.Currency) (valueledger.PartialValues, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
