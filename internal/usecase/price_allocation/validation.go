package price_allocation

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
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

	if req.ExchangeRateOverride != nil && *req.ExchangeRateOverride <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: exchange rate override must be positive", ErrInvalidInput)
	}

	return rng, nil
}
