package search_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase use case поиска свободных юнитов на период
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

// Execute выполняет use case поиска свободных юнитов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchAvailability: tenant=%s, start=%s, end=%s, includeTentative=%t",
		req.TenantID, req.Start, req.End, req.IncludeTentative)

	// 1. Валидация входных данных
	rng, err := validateRequest(req, types.DateOf(uc.timeProvider.Now()))
	if err != nil {
		uc.logger.Warn("SearchAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем снимок доступности
	snapshot, err := uc.resolver.Resolve(ctx, req.TenantID, rng, req.IncludeTentative)
	if err != nil {
		uc.logger.Error("SearchAvailability: failed to resolve availability for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	uc.logger.Info("SearchAvailability: tenant=%s, %d of %d units free for %s",
		req.TenantID, len(snapshot.FreeUnits), len(snapshot.AllUnits), rng)

	return &Response{
		Range:      rng,
		Nights:     rng.Nights(),
		FreeUnits:  snapshot.FreeUnits,
		TotalUnits: len(snapshot.AllUnits),
	}, nil
}
