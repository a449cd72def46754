package search_combination

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error) {
	args := m.Called(ctx, tenantID, rng, includeTentative)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySnapshot), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func d(s string) types.Date { return types.MustParseDate(s) }

func newTestUseCase(resolver AvailabilityResolver) *UseCase {
	uc := NewUseCase(resolver, logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

var (
	stayRange = domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-04")}
	units     = []domain.Unit{{ID: "u1", Capacity: 4}, {ID: "u2", Capacity: 4}, {ID: "u3", Capacity: 2}}
	rates     = []domain.RateEntry{
		{ID: "r1", UnitID: "u1", Start: d("2025-01-01"), End: d("2025-12-31"), Prices: map[string]float64{"direct": 50000}},
		{ID: "r2", UnitID: "u2", Start: d("2025-01-01"), End: d("2025-12-31"), Prices: map[string]float64{"direct": 60000}},
		{ID: "r3", UnitID: "u3", Start: d("2025-01-01"), End: d("2025-12-31"), Prices: map[string]float64{"direct": 30000}},
	}
)

func TestUseCase_AutoFallsBackToSegmented(t *testing.T) {
	ctx := context.Background()
	intervals := []domain.OccupancyInterval{
		{UnitID: "u1", Span: domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-02")}, Status: domain.StatusConfirmed},
		{UnitID: "u2", Span: domain.DateRange{Start: d("2025-07-03"), End: d("2025-07-04")}, Status: domain.StatusConfirmed},
		{UnitID: "u3", Span: domain.DateRange{Start: d("2025-07-02"), End: d("2025-07-03")}, Status: domain.StatusConfirmed},
	}
	resolver := new(mockResolver)
	resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, intervals), nil)

	resp, err := newTestUseCase(resolver).Execute(ctx, &Request{
		TenantID: "t1",
		Start:    stayRange.Start,
		End:      stayRange.End,
		Capacity: 4,
	})
	require.NoError(t, err)

	assert.True(t, resp.Found)
	assert.Equal(t, ModeSegmented, resp.Mode)
	require.NotNil(t, resp.Static)
	assert.True(t, resp.Static.IsEmpty())

	require.NotNil(t, resp.Segmented)
	require.Len(t, resp.Segmented.Itinerary, 2)
	assert.Equal(t, "u2", resp.Segmented.Itinerary[0].Unit.ID)
	assert.Equal(t, domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-03")}, resp.Segmented.Itinerary[0].Span)
	assert.Equal(t, "u1", resp.Segmented.Itinerary[1].Unit.ID)
	assert.Len(t, resp.Segmented.DailyOptions, 3)
}

func TestUseCase_DayOverrides(t *testing.T) {
	ctx := context.Background()
	intervals := []domain.OccupancyInterval{
		{UnitID: "u1", Span: domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-02")}, Status: domain.StatusConfirmed},
		{UnitID: "u2", Span: domain.DateRange{Start: d("2025-07-03"), End: d("2025-07-04")}, Status: domain.StatusConfirmed},
	}
	snapshot := availability.Build(stayRange, units, rates, intervals)

	request := func(overrides ...DayOverride) *Request {
		return &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, Capacity: 4, Overrides: overrides}
	}

	t.Run("auto goes straight to itinerary", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(snapshot, nil)

		resp, err := newTestUseCase(resolver).Execute(ctx, request(DayOverride{Day: d("2025-07-02"), UnitID: "u1"}))
		require.NoError(t, err)

		assert.Equal(t, ModeSegmented, resp.Mode)
		assert.Nil(t, resp.Static)
		require.Len(t, resp.Segmented.Itinerary, 2)
		assert.Equal(t, "u2", resp.Segmented.Itinerary[0].Unit.ID)
		assert.Equal(t, domain.DateRange{Start: d("2025-07-01"), End: d("2025-07-02")}, resp.Segmented.Itinerary[0].Span)
		assert.Equal(t, "u1", resp.Segmented.Itinerary[1].Unit.ID)
		assert.Equal(t, domain.DateRange{Start: d("2025-07-02"), End: d("2025-07-04")}, resp.Segmented.Itinerary[1].Span)
	})

	t.Run("unit too small for the day", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(snapshot, nil)

		_, err := newTestUseCase(resolver).Execute(ctx, request(DayOverride{Day: d("2025-07-02"), UnitID: "u3"}))
		assert.ErrorIs(t, err, ErrInvalidOverride)
	})

	t.Run("day outside the stay", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("Resolve", ctx, "t1", stayRange, false).Return(snapshot, nil)

		_, err := newTestUseCase(resolver).Execute(ctx, request(DayOverride{Day: d("2025-07-10"), UnitID: "u1"}))
		assert.ErrorIs(t, err, ErrInvalidOverride)
	})

	t.Run("static mode", func(t *testing.T) {
		resolver := new(mockResolver)
		req := request(DayOverride{Day: d("2025-07-02"), UnitID: "u1"})
		req.Mode = ModeStatic

		_, err := newTestUseCase(resolver).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUseCase_StaticOnly(t *testing.T) {
	ctx := context.Background()
	resolver := new(mockResolver)
	resolver.On("Resolve", ctx, "t1", stayRange, true).Return(availability.Build(stayRange, units, rates, nil), nil)

	resp, err := newTestUseCase(resolver).Execute(ctx, &Request{
		TenantID:         "t1",
		Start:            stayRange.Start,
		End:              stayRange.End,
		Capacity:         7,
		Mode:             ModeStatic,
		IncludeTentative: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Found)
	assert.Equal(t, ModeStatic, resp.Mode)
	assert.Nil(t, resp.Segmented)
	assert.Equal(t, 8, resp.Static.TotalCapacity)
}

func TestUseCase_NoAvailabilityIsNotAnError(t *testing.T) {
	ctx := context.Background()
	resolver := new(mockResolver)
	resolver.On("Resolve", ctx, "t1", stayRange, false).Return(availability.Build(stayRange, units, rates, nil), nil)

	resp, err := newTestUseCase(resolver).Execute(ctx, &Request{
		TenantID: "t1",
		Start:    stayRange.Start,
		End:      stayRange.End,
		Capacity: 5,
		Mode:     ModeSegmented,
	})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Segmented.Itinerary)
}

func TestUseCase_Validation(t *testing.T) {
	uc := newTestUseCase(new(mockResolver))
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Start: stayRange.Start, End: stayRange.End, Capacity: 2, Mode: "greedy"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Start: d("2025-05-01"), End: d("2025-05-03"), Capacity: 2})
	assert.ErrorIs(t, err, ErrDateInPast)
}
