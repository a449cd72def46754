package create_booking

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает период
func validateRequest(req *Request) (domain.DateRange, error) {
	if req.TenantID == "" {
		return domain.DateRange{}, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	rng, err := domain.NewDateRange(req.Start, req.End)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if rng.Nights() > domain.MaxStayNights {
		return domain.DateRange{}, fmt.Errorf("%w: stay of %d nights exceeds %d", ErrInvalidInput, rng.Nights(), domain.MaxStayNights)
	}

	if req.TaxMode != "" && !req.TaxMode.IsValid() {
		return domain.DateRange{}, fmt.Errorf("%w: unknown tax mode %q", ErrInvalidInput, req.TaxMode)
	}

	if err := validateRate("commissionRate", req.CommissionRate); err != nil {
		return domain.DateRange{}, err
	}
	if err := validateRate("channelCostRate", req.ChannelCostRate); err != nil {
		return domain.DateRange{}, err
	}

	if req.ExchangeRateOverride != nil && *req.ExchangeRateOverride <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: exchange rate override must be positive", ErrInvalidInput)
	}

	return rng, nil
}

func validateRate(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return fmt.Errorf("%w: %s must be in [0, 1)", ErrInvalidInput, name)
	}
	return nil
}

// validateStartDate проверяет, что заезд не в прошлом
func validateStartDate(start, today types.Date) error {
	if start.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, start, today)
	}
	return nil
}
