package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
)

const (
	msgMissingTenant = "отсутствует ID арендатора"
	msgNotFound      = "бронирование не найдено"
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

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id := mux.Vars(r)["reservationId"]

	res, err := h.service.GetByID(r.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("GET /reservations/{id} - Reservation not found: tenant=%s, id=%s", tenantID, id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /reservations/{id} - Failed to get reservation: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved successfully: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, res)
}
