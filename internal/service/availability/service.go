package availability

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Resolver определяет свободные юниты на период
type Resolver struct {
	unitRepo      UnitRepository
	rateRepo      RateRepository
	occupancyRepo OccupancyRepository
	logger        Logger
}

// NewResolver создает новый экземпляр резолвера доступности
func NewResolver(
	unitRepo UnitRepository,
	rateRepo RateRepository,
	occupancyRepo OccupancyRepository,
	logger Logger,
) *Resolver {
	return &Resolver{
		unitRepo:      unitRepo,
		rateRepo:      rateRepo,
		occupancyRepo: occupancyRepo,
		logger:        logger,
	}
}

// Resolve загружает юниты, тарифы и занятость арендатора и отбирает свободные юниты.
// Чтения выполняются параллельно, без общей транзакции.
// Юнит свободен, если хотя бы один тариф пересекается с периодом и
// ни один интервал занятости не пересекается с [Start, End).
// При ошибке любого чтения частичный результат не возвращается.
func (r *Resolver) Resolve(ctx context.Context, tenantID string, rng domain.DateRange, includeTentative bool) (*domain.AvailabilitySnapshot, error) {
	r.logger.Info("Resolve: tenant=%s, range=%s, includeTentative=%t", tenantID, rng, includeTentative)

	var (
		units     []domain.Unit
		rates     []domain.RateEntry
		intervals []domain.OccupancyInterval
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		units, err = r.unitRepo.ListUnits(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("list units: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		rates, err = r.rateRepo.ListRates(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("list rates: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		intervals, err = r.occupancyRepo.ListBlockingOccupancy(gctx, tenantID, rng, domain.OccupancyStatuses(includeTentative))
		if err != nil {
			return fmt.Errorf("list occupancy: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("Resolve: failed to load snapshot for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	snapshot := Build(rng, units, rates, intervals)

	r.logger.Info("Resolve: tenant=%s, %d/%d units free, %d rate entries, %d occupancy intervals",
		tenantID, len(snapshot.FreeUnits), len(units), len(rates), len(intervals))

	return snapshot, nil
}

// Build фильтрует юниты в памяти; порядок свободных юнитов совпадает с порядком units
func Build(rng domain.DateRange, units []domain.Unit, rates []domain.RateEntry, intervals []domain.OccupancyInterval) *domain.AvailabilitySnapshot {
	table := domain.NewRateTable(rates)
	occupancy := domain.GroupOccupancy(intervals)

	free := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		if !table.IsRated(u.ID, rng) {
			continue
		}
		if !occupancy.IsFree(u.ID, rng) {
			continue
		}
		free = append(free, u)
	}

	return &domain.AvailabilitySnapshot{
		Range:       rng,
		AllUnits:    units,
		FreeUnits:   free,
		RateEntries: rates,
		Rates:       table,
		Occupancy:   occupancy,
	}
}
