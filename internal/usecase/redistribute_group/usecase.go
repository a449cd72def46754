package redistribute_group

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// Результаты для метрики group_redistributions_total
const (
	resultApplied  = "applied"
	resultRejected = "rejected"
)

// UseCase use case ручного изменения итога группы бронирований
type UseCase struct {
	reservationRepo ReservationRepository
	converter       ValuationConverter
	txManager       TransactionManager
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case; m может быть nil
func NewUseCase(
	reservationRepo ReservationRepository,
	converter ValuationConverter,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		converter:       converter,
		txManager:       txManager,
		metrics:         m,
		logger:          logger,
	}
}

// Execute распределяет новый итог по бронированиям группы пропорционально текущим actual-итогам.
// Итог без валюты считается введенным в операционной валюте (CLP) и переводится в валюту оценки группы
// до начала транзакции. Бронирования группы блокируются на время транзакции; anchor-значения не меняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RedistributeGroup: tenant=%s, group=%s, total=%v %s",
		req.TenantID, req.GroupID, req.NewTotal, req.Currency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RedistributeGroup: validation failed: %v", err)
		uc.count(resultRejected)
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = valueledger.OperatingCurrency
	}

	// 2. Читаем группу без блокировки и переводим итог в валюту оценки группы.
	// Курс может потребовать запроса к внешнему API, поэтому он получается вне транзакции.
	group, err := uc.listGroup(ctx, req)
	if err != nil {
		uc.count(resultRejected)
		return nil, err
	}

	total, rate, err := uc.toGroupCurrency(ctx, group, currency, req)
	if err != nil {
		uc.count(resultRejected)
		return nil, err
	}

	var resp *Response

	// 3. Чтение с блокировкой, расчет и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем активные бронирования группы с блокировкой
		locked, err := uc.listGroup(txCtx, req)
		if err != nil {
			return err
		}
		if locked[0].Currency != group[0].Currency {
			uc.logger.Warn("RedistributeGroup: group=%s currency changed from %s to %s",
				req.GroupID, group[0].Currency, locked[0].Currency)
			return fmt.Errorf("%w: group %s is now valued in %s",
				domain.ErrRedistributionInput, req.GroupID, locked[0].Currency)
		}

		// 3.2. Распределяем итог
		updated, outcome, err := valueledger.Redistribute(locked, total)
		if err != nil {
			uc.logger.Warn("RedistributeGroup: group=%s rejected: %v", req.GroupID, err)
			if errors.Is(err, valueledger.ErrInvalidAmount) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return err
		}

		// 3.3. Сохраняем новые actual-значения
		for i := range updated {
			if err := uc.reservationRepo.UpdateActualValues(txCtx, &updated[i]); err != nil {
				uc.logger.Error("RedistributeGroup: failed to update reservation=%s: %v", updated[i].ID, err)
				return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
			}
		}

		resp = &Response{
			GroupID:       req.GroupID,
			Currency:      outcome.Currency,
			NewTotal:      outcome.NewTotal,
			PreviousTotal: outcome.PreviousTotal,
			AnchorTotal:   outcome.AnchorTotal,
			Adjustment:    outcome.Adjustment,
			EqualSplit:    outcome.EqualSplit,
			ExchangeRate:  rate,
			Reservations:  updated,
		}
		return nil
	})
	if err != nil {
		uc.count(resultRejected)
		return nil, err
	}

	uc.count(resultApplied)
	uc.logger.Info("RedistributeGroup: group=%s, %d reservations, total %v -> %v %s (anchor %v)",
		req.GroupID, len(resp.Reservations), resp.PreviousTotal, resp.NewTotal, resp.Currency, resp.AnchorTotal)

	return resp, nil
}

// listGroup возвращает активные бронирования группы; в транзакции строки блокируются
func (uc *UseCase) listGroup(ctx context.Context, req *Request) ([]domain.Reservation, error) {
	group, err := uc.reservationRepo.ListByGroup(ctx, req.TenantID, req.GroupID)
	if err != nil {
		uc.logger.Error("RedistributeGroup: failed to list group=%s: %v", req.GroupID, err)
		return nil, fmt.Errorf("%w: failed to list group: %v", ErrInternal, err)
	}
	if len(group) == 0 {
		uc.logger.Warn("RedistributeGroup: group=%s not found", req.GroupID)
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// toGroupCurrency возвращает итог в валюте оценки группы и использованный курс
func (uc *UseCase) toGroupCurrency(ctx context.Context, group []domain.Reservation, currency money.Currency, req *Request) (float64, float64, error) {
	groupCurrency := group[0].Currency
	if currency == groupCurrency {
		return req.NewTotal, 0, nil
	}

	if currency != valueledger.OperatingCurrency {
		uc.logger.Warn("RedistributeGroup: total in %s for group valued in %s", currency, groupCurrency)
		return 0, 0, fmt.Errorf("%w: total in %s cannot be applied to a group valued in %s",
			ErrInvalidInput, currency, groupCurrency)
	}

	total, rate, err := uc.converter.ToValuationCurrency(ctx, group, req.NewTotal)
	if err != nil {
		if errors.Is(err, domain.ErrRedistributionInput) || errors.Is(err, domain.ErrExchangeRateUnavailable) {
			uc.logger.Warn("RedistributeGroup: cannot convert total for group=%s: %v", req.GroupID, err)
			return 0, 0, err
		}
		uc.logger.Error("RedistributeGroup: failed to convert total for group=%s: %v", req.GroupID, err)
		return 0, 0, fmt.Errorf("%w: failed to convert total: %v", ErrInternal, err)
	}

	return total, rate, nil
}

func (uc *UseCase) count(result string) {
	if uc.metrics != nil {
		uc.metrics.GroupRedistributions.WithLabelValues(result).Inc()
	}
}
