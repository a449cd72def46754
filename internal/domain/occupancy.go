package domain

import "github.com/m04kA/SMC-RentalService/pkg/types"

// OccupancyInterval half-open span during which a unit is taken by a blocking reservation
type OccupancyInterval struct {
	UnitID        string
	ReservationID string
	Span          DateRange
	Status        ManagementStatus
}

// OccupancyByUnit occupancy intervals grouped by unit ID
type OccupancyByUnit map[string][]OccupancyInterval

// GroupOccupancy groups intervals by unit
func GroupOccupancy(intervals []OccupancyInterval) OccupancyByUnit {
	out := make(OccupancyByUnit)
	for _, iv := range intervals {
		out[iv.UnitID] = append(out[iv.UnitID], iv)
	}
	return out
}

// IsFree returns true if no interval of the unit overlaps the range
func (o OccupancyByUnit) IsFree(unitID string, r DateRange) bool {
	for _, iv := range o[unitID] {
		if iv.Span.Overlaps(r) {
			return false
		}
	}
	return true
}

// OccupiedOn returns true if the unit is taken on day
func (o OccupancyByUnit) OccupiedOn(unitID string, day types.Date) bool {
	for _, iv := range o[unitID] {
		if iv.Span.Contains(day) {
			return true
		}
	}
	return false
}
