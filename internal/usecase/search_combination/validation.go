package search_combination

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает период и режим
func validateRequest(req *Request, today types.Date) (domain.DateRange, Mode, error) {
	if req.TenantID == "" {
		return domain.DateRange{}, "", fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.Capacity <= 0 {
		return domain.DateRange{}, "", fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if req.Capacity > domain.MaxRequiredPax {
		return domain.DateRange{}, "", fmt.Errorf("%w: capacity %d exceeds %d", ErrInvalidInput, req.Capacity, domain.MaxRequiredPax)
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeAuto
	}
	switch mode {
	case ModeStatic, ModeSegmented, ModeAuto:
	default:
		return domain.DateRange{}, "", fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	if len(req.Overrides) > 0 && mode == ModeStatic {
		return domain.DateRange{}, "", fmt.Errorf("%w: overrides require a segmented itinerary", ErrInvalidInput)
	}

	rng, err := domain.NewDateRange(req.Start, req.End)
	if err != nil {
		return domain.DateRange{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if rng.Nights() > domain.MaxStayNights {
		return domain.DateRange{}, "", fmt.Errorf("%w: stay of %d nights exceeds %d", ErrInvalidInput, rng.Nights(), domain.MaxStayNights)
	}

	if rng.Start.Before(today) {
		return domain.DateRange{}, "", ErrDateInPast
	}

	return rng, mode, nil
}
