package search_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает период
func validateRequest(req *Request, today types.Date) (domain.DateRange, error) {
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

	if rng.Start.Before(today) {
		return domain.DateRange{}, ErrDateInPast
	}

	return rng, nil
}
