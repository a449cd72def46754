package redistribute_group

import (
	"fmt"
	"math"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.GroupID == "" {
		return fmt.Errorf("%w: groupID is required", ErrInvalidInput)
	}

	if math.IsNaN(req.NewTotal) || math.IsInf(req.NewTotal, 0) || req.NewTotal < 0 {
		return fmt.Errorf("%w: total must be a non-negative number", ErrInvalidInput)
	}

	if req.Currency != "" && !req.Currency.IsSupported() {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, req.Currency)
	}

	return nil
}
