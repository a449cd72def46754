package search_combination

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/service/combination"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase use case подбора юнитов под требуемую вместимость
type UseCase struct {
	resolver     AvailabilityResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver AvailabilityResolver, logger Logger) *UseCase {
	return &UseCase{
		resolver:     resolver,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет поиск комбинации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchCombination: tenant=%s, start=%s, end=%s, capacity=%d, mode=%s, overrides=%d",
		req.TenantID, req.Start, req.End, req.Capacity, req.Mode, len(req.Overrides))

	// 1. Валидация входных данных
	rng, mode, err := validateRequest(req, types.DateOf(uc.timeProvider.Now()))
	if err != nil {
		uc.logger.Warn("SearchCombination: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем снимок доступности
	snapshot, err := uc.resolver.Resolve(ctx, req.TenantID, rng, req.IncludeTentative)
	if err != nil {
		uc.logger.Error("SearchCombination: failed to resolve availability for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	resp := &Response{
		Range:    rng,
		Capacity: req.Capacity,
	}

	// 3. Статическая комбинация из юнитов, свободных на весь период
	if mode == ModeStatic || (mode == ModeAuto && len(req.Overrides) == 0) {
		static := combination.FindStatic(snapshot.FreeUnits, req.Capacity)
		resp.Mode = ModeStatic
		resp.Static = &static
		resp.Found = !static.IsEmpty()

		if resp.Found || mode == ModeStatic {
			uc.logger.Info("SearchCombination: tenant=%s, static found=%t, units=%d, capacity=%d",
				req.TenantID, resp.Found, len(static.Units), static.TotalCapacity)
			return resp, nil
		}
	}

	// 4. Посуточный маршрут: учитываются все юниты, занятость проверяется по дням
	segmented := combination.FindSegmented(snapshot.AllUnits, snapshot.Rates, snapshot.Occupancy, req.Capacity, rng)

	// 5. Ручные замены юнитов по дням
	for _, o := range req.Overrides {
		segmented, err = combination.OverrideDay(segmented, o.Day, o.UnitID)
		if err != nil {
			uc.logger.Warn("SearchCombination: override day=%s unit=%s rejected: %v", o.Day, o.UnitID, err)
			if errors.Is(err, combination.ErrDayNotInItinerary) || errors.Is(err, combination.ErrUnitNotAnOption) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidOverride, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	resp.Mode = ModeSegmented
	resp.Segmented = &segmented
	resp.Found = !segmented.IsEmpty()

	uc.logger.Info("SearchCombination: tenant=%s, segmented found=%t, segments=%d",
		req.TenantID, resp.Found, len(segmented.Itinerary))

	return resp, nil
}
