package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func TestRateTable_LookupMostSpecificWins(t *testing.T) {
	table := NewRateTable([]RateEntry{
		{ID: "season", UnitID: "u1", Start: d("2025-01-01"), End: d("2025-03-31"), Prices: map[string]float64{"direct": 100}},
		{ID: "holiday", UnitID: "u1", Start: d("2025-02-10"), End: d("2025-02-15"), Prices: map[string]float64{"direct": 180}},
		{ID: "other", UnitID: "u2", Start: d("2025-01-01"), End: d("2025-12-31"), Prices: map[string]float64{"direct": 50}},
	})

	entry, ok := table.Lookup("u1", d("2025-02-12"))
	require.True(t, ok)
	assert.Equal(t, "holiday", entry.ID)

	entry, ok = table.Lookup("u1", d("2025-02-16"))
	require.True(t, ok)
	assert.Equal(t, "season", entry.ID)

	// End is inclusive
	entry, ok = table.Lookup("u1", d("2025-02-15"))
	require.True(t, ok)
	assert.Equal(t, "holiday", entry.ID)

	_, ok = table.Lookup("u1", d("2025-04-01"))
	assert.False(t, ok)
}

func TestRateTable_EqualStartKeepsInputOrder(t *testing.T) {
	table := NewRateTable([]RateEntry{
		{ID: "first", UnitID: "u1", Start: d("2025-01-01"), End: d("2025-01-31")},
		{ID: "second", UnitID: "u1", Start: d("2025-01-01"), End: d("2025-01-31")},
	})

	entry, ok := table.Lookup("u1", d("2025-01-05"))
	require.True(t, ok)
	assert.Equal(t, "first", entry.ID)
}

func TestRateTable_IsRated(t *testing.T) {
	table := NewRateTable([]RateEntry{
		{ID: "r", UnitID: "u1", Start: d("2025-01-10"), End: d("2025-01-12")},
	})

	tests := []struct {
		name  string
		rng   DateRange
		rated bool
	}{
		{"window inside entry", DateRange{Start: d("2025-01-10"), End: d("2025-01-11")}, true},
		{"window ends where entry starts", DateRange{Start: d("2025-01-05"), End: d("2025-01-10")}, false},
		{"window touches last entry day", DateRange{Start: d("2025-01-12"), End: d("2025-01-14")}, true},
		{"window after entry", DateRange{Start: d("2025-01-13"), End: d("2025-01-14")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rated, table.IsRated("u1", tt.rng))
		})
	}

	assert.False(t, table.IsRated("u2", DateRange{Start: d("2025-01-10"), End: d("2025-01-11")}))
}

func TestRateEntry_PriceForIgnoresNonPositive(t *testing.T) {
	entry := RateEntry{Prices: map[string]float64{"direct": 100, "airbnb": 0}}

	price, ok := entry.PriceFor("direct")
	assert.True(t, ok)
	assert.Equal(t, 100.0, price)

	_, ok = entry.PriceFor("airbnb")
	assert.False(t, ok)

	_, ok = entry.PriceFor("booking")
	assert.False(t, ok)
}
