package price_allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
)

// UseCase use case расчета цены статического размещения или маршрута для канала продаж
type UseCase struct {
	resolver    AvailabilityResolver
	channelRepo ChannelRepository
	engine      PricingEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver AvailabilityResolver,
	channelRepo ChannelRepository,
	engine PricingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:    resolver,
		channelRepo: channelRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет расчет цены. Занятость юнитов не проверяется: это котировка, а не бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PriceAllocation: tenant=%s, start=%s, end=%s, channel=%s, units=%d, segments=%d",
		req.TenantID, req.Start, req.End, req.ChannelID, len(req.UnitIDs), len(req.Segments))

	// 1. Валидация входных данных
	rng, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("PriceAllocation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем каталог юнитов и тарифы
	snapshot, err := uc.resolver.Resolve(ctx, req.TenantID, rng, false)
	if err != nil {
		uc.logger.Error("PriceAllocation: failed to load inventory for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to load inventory: %v", ErrInternal, err)
	}

	// 3. Загружаем каналы продаж и проверяем канал по умолчанию
	channels, err := uc.channelRepo.ListChannels(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("PriceAllocation: failed to list channels for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to list channels: %v", ErrInternal, err)
	}

	registry, err := domain.NewChannelRegistry(channels)
	if err != nil {
		uc.logger.Error("PriceAllocation: channel configuration of tenant=%s is broken: %v", req.TenantID, err)
		return nil, err
	}

	// 4. Собираем размещение
	allocation, err := pricing.BuildAllocation(snapshot.AllUnits, req.UnitIDs, req.Segments, rng)
	if err != nil {
		uc.logger.Warn("PriceAllocation: invalid allocation: %v", err)
		if errors.Is(err, pricing.ErrUnknownUnit) {
			return nil, fmt.Errorf("%w: %v", ErrUnitNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAllocation, err)
	}

	// 5. Считаем цену
	result, err := uc.engine.Price(ctx, pricing.Request{
		TenantID:             req.TenantID,
		Allocation:           allocation,
		Range:                rng,
		Rates:                snapshot.Rates,
		Channels:             registry,
		TargetChannelID:      req.ChannelID,
		ExchangeRateOverride: req.ExchangeRateOverride,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidChannel):
			uc.logger.Warn("PriceAllocation: channel=%s not found for tenant=%s", req.ChannelID, req.TenantID)
			return nil, err
		case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrExchangeRateUnavailable):
			uc.logger.Error("PriceAllocation: pricing failed for tenant=%s: %v", req.TenantID, err)
			return nil, err
		default:
			uc.logger.Error("PriceAllocation: unexpected pricing error for tenant=%s: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}
	}

	if len(result.RateGaps) > 0 {
		uc.logger.Warn("PriceAllocation: tenant=%s, %d unit-days without rate priced as 0", req.TenantID, len(result.RateGaps))
	}

	uc.logger.Info("PriceAllocation: tenant=%s, mode=%s, total=%v %s (%v %s)",
		req.TenantID, result.Mode, result.Total, result.Currency, result.TotalInOperatingCurrency, pricing.OperatingCurrency)

	return &Response{
		Range:  rng,
		Result: result,
	}, nil
}
