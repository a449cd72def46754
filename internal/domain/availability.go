package domain

import "github.com/m04kA/SMC-RentalService/pkg/types"

// AvailabilitySnapshot result of resolving a tenant's inventory for one date range.
// All fields are taken from the same logical read; later writes are detected at commit time.
type AvailabilitySnapshot struct {
	Range       DateRange
	AllUnits    []Unit
	FreeUnits   []Unit
	RateEntries []RateEntry
	Rates       *RateTable
	Occupancy   OccupancyByUnit
}

// Segment a contiguous part of a stay assigned to one unit, half-open [Span.Start, Span.End)
type Segment struct {
	Unit Unit
	Span DateRange
}

// DayOptions units that can host the whole party alone on a given day, in unit input order
type DayOptions struct {
	Day   types.Date
	Units []Unit
}

// Has returns true if the unit is among the day's options
func (o DayOptions) Has(unitID string) bool {
	for _, u := range o.Units {
		if u.ID == unitID {
			return true
		}
	}
	return false
}

// DayAssignment unit chosen for a single day of a segmented stay
type DayAssignment struct {
	Day  types.Date
	Unit Unit
}
