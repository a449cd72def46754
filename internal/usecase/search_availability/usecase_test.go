package search_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
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

func newTestUseCase(resolver AvailabilityResolver) *UseCase {
	uc := NewUseCase(resolver, logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	resolver := new(mockResolver)
	rng := domain.DateRange{Start: types.MustParseDate("2025-07-01"), End: types.MustParseDate("2025-07-04")}

	units := []domain.Unit{{ID: "u1", Capacity: 4}, {ID: "u2", Capacity: 2}}
	resolver.On("Resolve", ctx, "t1", rng, true).Return(&domain.AvailabilitySnapshot{
		Range:     rng,
		AllUnits:  units,
		FreeUnits: units[1:],
	}, nil)

	resp, err := newTestUseCase(resolver).Execute(ctx, &Request{
		TenantID:         "t1",
		Start:            rng.Start,
		End:              rng.End,
		IncludeTentative: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 2, resp.TotalUnits)
	assert.Equal(t, []domain.Unit{{ID: "u2", Capacity: 2}}, resp.FreeUnits)
}

func TestUseCase_Validation(t *testing.T) {
	uc := newTestUseCase(new(mockResolver))
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TenantID: "t1", Start: types.MustParseDate("2025-07-04"), End: types.MustParseDate("2025-07-04")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Start: types.MustParseDate("2025-07-01"), End: types.MustParseDate("2025-07-04")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Start: types.MustParseDate("2025-05-30"), End: types.MustParseDate("2025-06-02")})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = uc.Execute(ctx, &Request{TenantID: "t1", Start: types.MustParseDate("2025-07-01"), End: types.MustParseDate("2026-08-01")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_ResolverFailure(t *testing.T) {
	ctx := context.Background()
	resolver := new(mockResolver)
	resolver.On("Resolve", ctx, "t1", mock.Anything, false).Return(nil, errors.New("db down"))

	_, err := newTestUseCase(resolver).Execute(ctx, &Request{
		TenantID: "t1",
		Start:    types.MustParseDate("2025-07-01"),
		End:      types.MustParseDate("2025-07-02"),
	})
	assert.ErrorIs(t, err, ErrInternal)
}
