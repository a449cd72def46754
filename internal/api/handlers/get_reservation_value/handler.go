package get_reservation_value

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
)

const (
	msgMissingTenant       = "отсутствует ID арендатора"
	msgNotFound            = "бронирование не найдено"
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

// Handle GET /api/v1/reservations/{reservationId}/value
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id}/value - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id := mux.Vars(r)["reservationId"]

	value, err := h.service.ValueInOperatingCurrency(r.Context(), tenantID, id)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/value - Reservation not found: tenant=%s, id=%s", tenantID, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("GET /reservations/{id}/value - Exchange rate unavailable: id=%s, error=%v", id, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("GET /reservations/{id}/value - Failed to value reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id}/value - Reservation valued: id=%s, fixed=%t", id, value.WasFixed)
	handlers.RespondJSON(w, http.StatusOK, value)
}
