package domain

import (
	"sort"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RateEntry base nightly price of a unit for an inclusive validity interval [Start, End].
// Prices are keyed by channel ID and expressed in the default channel's currency.
type RateEntry struct {
	ID     string
	UnitID string
	Start  types.Date
	End    types.Date
	Prices map[string]float64
}

// Covers returns true if the entry is valid on day (inclusive on both ends)
func (e *RateEntry) Covers(day types.Date) bool {
	return !day.Before(e.Start) && !day.After(e.End)
}

// OverlapsRange returns true if the entry covers at least one day of the half-open range
func (e *RateEntry) OverlapsRange(r DateRange) bool {
	lastDay := r.End.AddDays(-1)
	return !e.Start.After(lastDay) && !e.End.Before(r.Start)
}

// PriceFor returns the positive base price for a channel
func (e *RateEntry) PriceFor(channelID string) (float64, bool) {
	price, ok := e.Prices[channelID]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// RateTable indexes rate entries by unit for day lookups.
// Within a unit entries are ordered by Start descending, so the first covering entry is
// the most specific one. Entries with equal Start keep their input order.
type RateTable struct {
	byUnit map[string][]RateEntry
}

// NewRateTable builds the lookup index
func NewRateTable(entries []RateEntry) *RateTable {
	byUnit := make(map[string][]RateEntry)
	for _, e := range entries {
		byUnit[e.UnitID] = append(byUnit[e.UnitID], e)
	}
	for unitID := range byUnit {
		list := byUnit[unitID]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Start.After(list[j].Start)
		})
	}
	return &RateTable{byUnit: byUnit}
}

// Lookup returns the entry with the latest Start that still covers day
func (t *RateTable) Lookup(unitID string, day types.Date) (RateEntry, bool) {
	for _, e := range t.byUnit[unitID] {
		if e.Covers(day) {
			return e, true
		}
	}
	return RateEntry{}, false
}

// IsRated returns true if at least one entry of the unit overlaps the range
func (t *RateTable) IsRated(unitID string, r DateRange) bool {
	for _, e := range t.byUnit[unitID] {
		if e.OverlapsRange(r) {
			return true
		}
	}
	return false
}

// IsRatedOn returns true if the unit has an entry covering day
func (t *RateTable) IsRatedOn(unitID string, day types.Date) bool {
	_, ok := t.Lookup(unitID, day)
	return ok
}
