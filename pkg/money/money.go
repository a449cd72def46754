package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency код валюты ISO 4217
type Currency string

const (
	// CLP операционная валюта арендатора
	CLP Currency = "CLP"
	// USD валюта учета стоимости бронирований
	USD Currency = "USD"
)

var (
	// ErrUnsupportedCurrency возвращается для валютной пары без известного курса
	ErrUnsupportedCurrency = errors.New("money: unsupported currency pair")

	// ErrInvalidRate возвращается при неположительном курсе
	ErrInvalidRate = errors.New("money: exchange rate must be positive")
)

// minorUnits количество знаков после запятой у валюты
var minorUnits = map[Currency]int32{
	CLP: 0,
	USD: 2,
}

// MinorUnits возвращает количество знаков после запятой (по умолчанию 2)
func (c Currency) MinorUnits() int32 {
	if places, ok := minorUnits[c]; ok {
		return places
	}
	return 2
}

// IsSupported проверяет, что валюта участвует в конвертации CLP/USD
func (c Currency) IsSupported() bool {
	_, ok := minorUnits[c]
	return ok
}

// Round округляет сумму до минимальной единицы валюты (half-up, от нуля)
func Round(amount float64, currency Currency) float64 {
	return decimal.NewFromFloat(amount).Round(currency.MinorUnits()).InexactFloat64()
}

// Convert переводит сумму между валютами по курсу "CLP за 1 USD"
// Одинаковые валюты конвертируются без курса
func Convert(amount float64, from, to Currency, clpPerUSD float64) (float64, error) {
	if from == to {
		return amount, nil
	}
	if clpPerUSD <= 0 {
		return 0, ErrInvalidRate
	}

	switch {
	case from == USD && to == CLP:
		return amount * clpPerUSD, nil
	case from == CLP && to == USD:
		return amount / clpPerUSD, nil
	default:
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCurrency, from, to)
	}
}

// NeedsRate проверяет, требуется ли курс для конвертации между валютами
func NeedsRate(from, to Currency) bool {
	return from != to
}
