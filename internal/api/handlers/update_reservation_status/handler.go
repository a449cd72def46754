package update_reservation_status

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

const (
	msgMissingTenant       = "отсутствует ID арендатора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStatus       = "неизвестный статус бронирования"
	msgNotFound            = "бронирование не найдено"
	msgTransitionForbidden = "переход в указанный статус запрещен"
	msgExchangeUnavailable = "курс валют недоступен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/status - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id := mux.Vars(r)["reservationId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Status = strings.TrimSpace(req.Status)

	res, err := h.service.UpdateStatus(r.Context(), tenantID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: id=%s, status=%s", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: tenant=%s, id=%s", tenantID, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Transition forbidden: id=%s, error=%v", id, err)
			handlers.RespondConflict(w, msgTransitionForbidden)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("PATCH /reservations/{id}/status - Exchange rate unavailable: id=%s, error=%v", id, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to update status: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status updated: id=%s, status=%s", id, res.Status)
	handlers.RespondJSON(w, http.StatusOK, res)
}
