package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase use case для создания группы бронирований по статическому размещению или маршруту
type UseCase struct {
	resolver        AvailabilityResolver
	channelRepo     ChannelRepository
	reservationRepo ReservationRepository
	engine          PricingEngine
	txManager       TransactionManager
	metrics         *metrics.Metrics
	timeProvider    TimeProvider
	newID           func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case; m может быть nil
func NewUseCase(
	resolver AvailabilityResolver,
	channelRepo ChannelRepository,
	reservationRepo ReservationRepository,
	engine PricingEngine,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		channelRepo:     channelRepo,
		reservationRepo: reservationRepo,
		engine:          engine,
		txManager:       txManager,
		metrics:         m,
		timeProvider:    &RealTimeProvider{},
		newID:           uuid.NewString,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Доступность проверяется по снимку, а повторно - в сериализуемой транзакции перед вставкой:
// если за это время юнит заняли, возвращается domain.ErrBookingConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, start=%s, end=%s, channel=%s, units=%d, segments=%d, proposal=%t",
		req.TenantID, req.Start, req.End, req.ChannelID, len(req.UnitIDs), len(req.Segments), req.Proposal)

	// 1. Валидация входных данных
	rng, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateStartDate(rng.Start, types.DateOf(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	taxMode := req.TaxMode
	if taxMode == "" {
		taxMode = domain.TaxModeAdd
	}

	// 2. Получаем снимок доступности
	snapshot, err := uc.resolver.Resolve(ctx, req.TenantID, rng, false)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve availability for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	// 3. Собираем размещение и проверяем, что юниты свободны
	allocation, err := pricing.BuildAllocation(snapshot.AllUnits, req.UnitIDs, req.Segments, rng)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid allocation: %v", err)
		if errors.Is(err, pricing.ErrUnknownUnit) {
			return nil, fmt.Errorf("%w: %v", ErrUnitNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAllocation, err)
	}

	stays := staysOf(allocation, rng)
	for _, s := range stays {
		if !snapshot.Occupancy.IsFree(s.unitID, s.span) {
			uc.logger.Warn("CreateBooking: unit=%s is occupied in %s", s.unitID, s.span)
			return nil, fmt.Errorf("%w: unit %s in %s", ErrUnitNotAvailable, s.unitID, s.span)
		}
	}

	// 4. Загружаем каналы продаж
	channels, err := uc.channelRepo.ListChannels(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list channels for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to list channels: %v", ErrInternal, err)
	}

	registry, err := domain.NewChannelRegistry(channels)
	if err != nil {
		uc.logger.Error("CreateBooking: channel configuration of tenant=%s is broken: %v", req.TenantID, err)
		return nil, err
	}

	// 5. Считаем цену
	quote, err := uc.engine.Price(ctx, pricing.Request{
		TenantID:             req.TenantID,
		Allocation:           allocation,
		Range:                rng,
		Rates:                snapshot.Rates,
		Channels:             registry,
		TargetChannelID:      req.ChannelID,
		ExchangeRateOverride: req.ExchangeRateOverride,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidChannel) || errors.Is(err, domain.ErrConfiguration) ||
			errors.Is(err, domain.ErrExchangeRateUnavailable) {
			uc.logger.Warn("CreateBooking: pricing rejected for tenant=%s: %v", req.TenantID, err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: pricing failed for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// 6. Готовим бронирования: по одному на строку цены, actual = anchor
	status := domain.StatusConfirmed
	if req.Proposal {
		status = domain.StatusProposed
	}

	groupID := uc.newID()
	reservations := make([]domain.Reservation, 0, len(quote.Breakdown))
	for _, item := range quote.Breakdown {
		values, err := uc.lineValues(item, quote.Currency, taxMode, req)
		if err != nil {
			uc.logger.Warn("CreateBooking: unit=%s: %v", item.UnitID, err)
			return nil, err
		}

		actual, anchor := valueledger.NewReservationValues(values, quote.Currency)
		reservations = append(reservations, domain.Reservation{
			ID:        uc.newID(),
			TenantID:  req.TenantID,
			GroupID:   groupID,
			UnitID:    item.UnitID,
			ChannelID: quote.Channel.ID,
			Stay:      item.Span,
			Status:    status,
			TaxMode:   taxMode,
			Currency:  quote.Currency,
			Actual:    actual,
			Anchor:    anchor,
		})
	}

	// 7. Повторная проверка и вставка в сериализуемой транзакции
	created := make([]domain.Reservation, 0, len(reservations))
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]
		statuses := domain.OccupancyStatuses(false)

		for _, s := range stays {
			conflict, err := uc.reservationRepo.CheckConflict(txCtx, req.TenantID, s.unitID, s.span, statuses)
			if err != nil && txmanager.IsSerializationFailure(err) {
				return uc.conflict(req.TenantID, s.unitID, s.span, err)
			}
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check conflict for unit=%s: %v", s.unitID, err)
				return fmt.Errorf("%w: failed to check conflict: %v", ErrInternal, err)
			}
			if conflict {
				return uc.conflict(req.TenantID, s.unitID, s.span, nil)
			}
		}

		for i := range reservations {
			res, err := uc.reservationRepo.Create(txCtx, &reservations[i])
			if err != nil && (errors.Is(err, reservationRepo.ErrOverlap) || txmanager.IsSerializationFailure(err)) {
				return uc.conflict(req.TenantID, reservations[i].UnitID, reservations[i].Stay, err)
			}
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create reservation for unit=%s: %v", reservations[i].UnitID, err)
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}
			created = append(created, *res)
		}

		return nil
	})
	if err != nil {
		// сериализуемая транзакция не закоммитилась из-за параллельной записи
		if errors.Is(err, txmanager.ErrSerialization) && !errors.Is(err, domain.ErrBookingConflict) {
			uc.logger.Warn("CreateBooking: group=%s lost serialization race: %v", groupID, err)
			if uc.metrics != nil {
				uc.metrics.BookingConflicts.WithLabelValues(req.TenantID).Inc()
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrBookingConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created group=%s with %d reservations, total=%v %s",
		groupID, len(created), quote.Total, quote.Currency)

	return &Response{
		GroupID:                  groupID,
		Status:                   status,
		Currency:                 quote.Currency,
		Total:                    quote.Total,
		TotalInOperatingCurrency: quote.TotalInOperatingCurrency,
		ExchangeRate:             quote.ExchangeRate,
		Reservations:             created,
		RateGaps:                 quote.RateGaps,
	}, nil
}

// conflict фиксирует метрику и возвращает ошибку конфликта бронирования по юниту
func (uc *UseCase) conflict(tenantID, unitID string, span domain.DateRange, cause error) error {
	uc.logger.Warn("CreateBooking: unit=%s was booked in %s after availability was read", unitID, span)
	if uc.metrics != nil {
		uc.metrics.BookingConflicts.WithLabelValues(tenantID).Inc()
	}
	if cause != nil {
		return fmt.Errorf("%w: unit %s in %s: %v", domain.ErrBookingConflict, unitID, span, cause)
	}
	return fmt.Errorf("%w: unit %s in %s", domain.ErrBookingConflict, unitID, span)
}

// lineValues раскладывает итог строки на payout, комиссию, расходы канала и налог
func (uc *UseCase) lineValues(item pricing.LineItem, currency money.Currency, mode domain.TaxMode, req *Request) (domain.ValueSet, error) {
	guestTotal := money.Round(item.Total, currency)
	commission := guestTotal * req.CommissionRate
	channelCost := guestTotal * req.ChannelCostRate

	partial, err := valueledger.RecalcFromTotal(guestTotal, mode, commission)
	if err != nil {
		return domain.ValueSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if partial.Payout < 0 {
		return domain.ValueSet{}, fmt.Errorf("%w: commission %v exceeds subtotal", ErrInvalidInput, commission)
	}

	return domain.ValueSet{
		GuestTotal:  partial.GuestTotal,
		Payout:      partial.Payout,
		Commission:  commission,
		ChannelCost: channelCost,
		Tax:         partial.Tax,
	}, nil
}

// stay юнит и период, который он занимает
type stay struct {
	unitID string
	span   domain.DateRange
}

// staysOf раскладывает размещение на пары юнит-период для проверки занятости
func staysOf(allocation pricing.Allocation, rng domain.DateRange) []stay {
	switch alloc := allocation.(type) {
	case pricing.StaticAllocation:
		out := make([]stay, 0, len(alloc.Units))
		for _, u := range alloc.Units {
			out = append(out, stay{unitID: u.ID, span: rng})
		}
		return out
	case pricing.SegmentedAllocation:
		out := make([]stay, 0, len(alloc.Segments))
		for _, s := range alloc.Segments {
			out = append(out, stay{unitID: s.Unit.ID, span: s.Span})
		}
		return out
	default:
		return nil
	}
}
