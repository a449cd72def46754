package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// Service сервис для работы с бронированиями и их оценкой
type Service struct {
	reservationRepo ReservationRepository
	valuer          Valuer
	rates           ExchangeRateProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	valuer Valuer,
	rates ExchangeRateProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		valuer:          valuer,
		rates:           rates,
		logger:          logger,
	}
}

// GetByID получает бронирование арендатора по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for tenant=%s", id, tenantID)

	res, err := s.getReservation(ctx, "GetByID", tenantID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%s", id)
	return models.FromDomainReservation(res), nil
}

// ValueInOperatingCurrency возвращает actual-значения бронирования в операционной валюте
// по правилу фиксированного/плавающего курса
func (s *Service) ValueInOperatingCurrency(ctx context.Context, tenantID, id string) (*models.ValuationResponse, error) {
	s.logger.Info("ValueInOperatingCurrency: valuing reservation id=%s for tenant=%s", id, tenantID)

	res, err := s.getReservation(ctx, "ValueInOperatingCurrency", tenantID, id)
	if err != nil {
		return nil, err
	}

	val, err := s.valuer.Value(ctx, res)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRateUnavailable) {
			s.logger.Warn("ValueInOperatingCurrency: no exchange rate for reservation id=%s: %v", id, err)
			return nil, err
		}
		s.logger.Error("ValueInOperatingCurrency: failed to value reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: ValueInOperatingCurrency - valuation error: %v", ErrInternal, err)
	}

	s.logger.Info("ValueInOperatingCurrency: reservation id=%s valued at %.0f %s (rate=%v, fixed=%t)",
		id, val.GuestTotal, val.Currency, val.ExchangeRateUsed, val.WasFixed)

	resp := models.FromValuation(val)
	return &resp, nil
}

// GetGroup возвращает активные бронирования группы с оценкой и отклонением от якоря
func (s *Service) GetGroup(ctx context.Context, tenantID, groupID string) (*models.GroupResponse, error) {
	s.logger.Info("GetGroup: fetching group=%s for tenant=%s", groupID, tenantID)

	group, err := s.reservationRepo.ListByGroup(ctx, tenantID, groupID)
	if err != nil {
		s.logger.Error("GetGroup: repository error for group=%s: %v", groupID, err)
		return nil, fmt.Errorf("%w: GetGroup - repository error: %v", ErrInternal, err)
	}
	if len(group) == 0 {
		s.logger.Warn("GetGroup: group=%s has no active reservations", groupID)
		return nil, ErrGroupNotFound
	}

	currency := group[0].Currency
	resp := &models.GroupResponse{
		GroupID:           groupID,
		Currency:          string(currency),
		Members:           make([]models.GroupMember, 0, len(group)),
		Drift:             money.Round(valueledger.Drift(group), currency),
		OperatingCurrency: string(valueledger.OperatingCurrency),
	}

	for i := range group {
		res := &group[i]

		val, err := s.valuer.Value(ctx, res)
		if err != nil {
			if errors.Is(err, domain.ErrExchangeRateUnavailable) {
				s.logger.Warn("GetGroup: no exchange rate for reservation id=%s: %v", res.ID, err)
				return nil, err
			}
			s.logger.Error("GetGroup: failed to value reservation id=%s: %v", res.ID, err)
			return nil, fmt.Errorf("%w: GetGroup - valuation error: %v", ErrInternal, err)
		}

		resp.ActualTotal += res.Actual.GuestTotal
		resp.AnchorTotal += res.Anchor.GuestTotal
		resp.OperatingTotal += val.GuestTotal
		resp.Members = append(resp.Members, models.GroupMember{
			Reservation: *models.FromDomainReservation(res),
			Valuation:   models.FromValuation(val),
		})
	}

	resp.ActualTotal = money.Round(resp.ActualTotal, currency)
	resp.AnchorTotal = money.Round(resp.AnchorTotal, currency)

	s.logger.Info("GetGroup: group=%s has %d reservations, drift=%v %s", groupID, len(group), resp.Drift, currency)
	return resp, nil
}

// UpdateStatus переводит бронирование в новый статус по автомату состояний.
// При переходе в invoiced фиксируется сегодняшний курс, он используется при последующих оценках.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%s, tenant=%s, status=%s", id, tenantID, req.Status)

	next := domain.ManagementStatus(req.Status)
	if !next.IsValid() {
		s.logger.Warn("UpdateStatus: unknown status=%s for reservation id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %v: %s", ErrInvalidInput, domain.ErrInvalidStatus, req.Status)
	}

	res, err := s.getReservation(ctx, "UpdateStatus", tenantID, id)
	if err != nil {
		return nil, err
	}

	if !res.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%s", res.Status, next, id)
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, res.Status, next)
	}

	var invoicedRate *float64
	if next == domain.StatusInvoiced && res.Currency != valueledger.OperatingCurrency {
		rate, err := s.rates.TodayRate(ctx, tenantID)
		if err != nil {
			s.logger.Warn("UpdateStatus: cannot freeze exchange rate for reservation id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrExchangeRateUnavailable, err)
		}
		invoicedRate = &rate
	}

	if err := s.reservationRepo.UpdateStatus(ctx, tenantID, id, next, invoicedRate); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%s disappeared", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	res.Status = next
	if invoicedRate != nil {
		res.InvoicedExchangeRate = invoicedRate
	}

	s.logger.Info("UpdateStatus: reservation id=%s moved to %s", id, next)
	return models.FromDomainReservation(res), nil
}

func (s *Service) getReservation(ctx context.Context, op, tenantID, id string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
