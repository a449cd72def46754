package valueledger

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// Calculator расчет значений бронирования без сохранения, с округлением до минимальной единицы валюты.
// Пустая валюта означает ответ без округления.
type Calculator struct{}

// NewCalculator создает калькулятор значений
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Derive значения из строки отчета канала
func (c *Calculator) Derive(payout, commission, channelCost float64, mode domain.TaxMode, currency money.Currency) (domain.ValueSet, error) {
	if err := checkCurrency(currency); err != nil {
		return domain.ValueSet{}, err
	}

	set, err := DeriveFromReport(payout, commission, channelCost, mode)
	if err != nil {
		return domain.ValueSet{}, err
	}

	if currency == "" {
		return set, nil
	}
	return roundSet(set, currency), nil
}

// Recalc раскладка нового итога гостя при неизменной комиссии
func (c *Calculator) Recalc(total float64, mode domain.TaxMode, commission float64, currency money.Currency) (PartialValues, error) {
	if err := checkCurrency(currency); err != nil {
		return PartialValues{}, err
	}

	partial, err := RecalcFromTotal(total, mode, commission)
	if err != nil {
		return PartialValues{}, err
	}

	if currency == "" {
		return partial, nil
	}
	return PartialValues{
		GuestTotal: money.Round(partial.GuestTotal, currency),
		Payout:     money.Round(partial.Payout, currency),
		Tax:        money.Round(partial.Tax, currency),
	}, nil
}

func checkCurrency(currency money.Currency) error {
	if currency != "" && !currency.IsSupported() {
		return fmt.Errorf("%w: %s", money.ErrUnsupportedCurrency, currency)
	}
	return nil
}
