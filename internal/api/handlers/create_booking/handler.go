package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

const (
	msgMissingTenant       = "отсутствует ID арендатора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные бронирования"
	msgInvalidAllocation   = "нужно указать либо юниты, либо маршрут без пропусков и пересечений"
	msgDateInPast          = "дата заезда уже прошла"
	msgUnitNotFound        = "юнит не найден"
	msgUnitNotAvailable    = "юнит занят в выбранные даты"
	msgAvailabilityChanged = "доступность изменилась, повторите поиск"
	msgChannelNotFound     = "канал продаж не найден"
	msgConfiguration       = "каналы продаж настроены некорректно"
	msgExchangeUnavailable = "курс валют недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Availability changed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondConflict(w, msgAvailabilityChanged)

		case errors.Is(err, createBooking.ErrUnitNotAvailable):
			h.logger.Warn("POST /bookings - Unit not available: tenant=%s, error=%v", tenantID, err)
			handlers.RespondConflict(w, msgUnitNotAvailable)

		case errors.Is(err, createBooking.ErrUnitNotFound):
			h.logger.Warn("POST /bookings - Unit not found: tenant=%s, error=%v", tenantID, err)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, domain.ErrInvalidChannel):
			h.logger.Warn("POST /bookings - Channel not found: tenant=%s, channel=%s", tenantID, req.ChannelID)
			handlers.RespondNotFound(w, msgChannelNotFound)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: tenant=%s, start=%s", tenantID, req.Start)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidAllocation):
			h.logger.Warn("POST /bookings - Invalid allocation: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidAllocation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrConfiguration):
			h.logger.Error("POST /bookings - Channel configuration error: tenant=%s, error=%v", tenantID, err)
			handlers.RespondUnprocessable(w, msgConfiguration)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("POST /bookings - Exchange rate unavailable: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: tenant=%s, group=%s, reservations=%d",
		tenantID, result.GroupID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
