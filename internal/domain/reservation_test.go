package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagementStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    ManagementStatus
		to      ManagementStatus
		allowed bool
	}{
		{StatusProposed, StatusConfirmed, true},
		{StatusProposed, StatusRejected, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPendingWelcome, true},
		{StatusPendingWelcome, StatusPendingPayment, true},
		{StatusPendingPayment, StatusPendingReceipt, true},
		{StatusPendingReceipt, StatusInvoiced, true},
		{StatusProposed, StatusInvoiced, false},
		{StatusPendingWelcome, StatusCancelled, false},
		{StatusInvoiced, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEditedFields_Has(t *testing.T) {
	edited := EditedGuestTotal | EditedPayout

	assert.True(t, edited.Has(EditedGuestTotal))
	assert.True(t, edited.Has(EditedGuestTotal|EditedPayout))
	assert.False(t, edited.Has(EditedTax))
	assert.False(t, edited.Has(EditedPayout|EditedTax))
}

func TestOccupancyStatuses(t *testing.T) {
	assert.NotContains(t, OccupancyStatuses(false), StatusProposed)
	assert.Contains(t, OccupancyStatuses(true), StatusProposed)
	assert.Contains(t, OccupancyStatuses(false), StatusInvoiced)
}

func TestDateRange(t *testing.T) {
	_, err := NewDateRange(d("2025-01-10"), d("2025-01-10"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	r, err := NewDateRange(d("2025-01-10"), d("2025-01-13"))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Nights())
	require.Len(t, r.Days(), 3)
	assert.Equal(t, "2025-01-12", r.Days()[2].String())
	assert.False(t, r.Contains(d("2025-01-13")))

	// checkout on X does not block a check-in on X
	next := DateRange{Start: d("2025-01-13"), End: d("2025-01-15")}
	assert.False(t, r.Overlaps(next))
	assert.True(t, r.Overlaps(DateRange{Start: d("2025-01-12"), End: d("2025-01-14")}))
}

func TestOccupancyByUnit(t *testing.T) {
	occ := GroupOccupancy([]OccupancyInterval{
		{UnitID: "u1", Span: DateRange{Start: d("2025-01-10"), End: d("2025-01-12")}},
	})

	assert.False(t, occ.IsFree("u1", DateRange{Start: d("2025-01-11"), End: d("2025-01-13")}))
	assert.True(t, occ.IsFree("u1", DateRange{Start: d("2025-01-12"), End: d("2025-01-13")}))
	assert.True(t, occ.IsFree("u2", DateRange{Start: d("2025-01-10"), End: d("2025-01-13")}))
	assert.True(t, occ.OccupiedOn("u1", d("2025-01-11")))
	assert.False(t, occ.OccupiedOn("u1", d("2025-01-12")))
}
