package domain

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// DateRange half-open range of calendar days [Start, End).
// A checkout on day X does not overlap a check-in on day X.
type DateRange struct {
	Start types.Date
	End   types.Date
}

// NewDateRange validates that End is strictly after Start
func NewDateRange(start, end types.Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: start and end are required", ErrInvalidDateRange)
	}
	if !end.After(start) {
		return DateRange{}, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidDateRange, end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

// Nights returns the number of calendar days in the range
func (r DateRange) Nights() int {
	n := r.Start.DaysUntil(r.End)
	if n < 0 {
		return 0
	}
	return n
}

// Days lists every calendar day in [Start, End)
func (r DateRange) Days() []types.Date {
	n := r.Nights()
	days := make([]types.Date, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, r.Start.AddDays(i))
	}
	return days
}

// Contains returns true if day falls inside [Start, End)
func (r DateRange) Contains(day types.Date) bool {
	return !day.Before(r.Start) && day.Before(r.End)
}

// Overlaps returns true if both half-open ranges share at least one day
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
