package get_group

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
	msgNotFound            = "группа бронирований не найдена"
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

// Handle GET /api/v1/groups/{groupId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /groups/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	groupID := mux.Vars(r)["groupId"]

	group, err := h.service.GetGroup(r.Context(), tenantID, groupID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrGroupNotFound):
			h.logger.Warn("GET /groups/{id} - Group not found: tenant=%s, group=%s", tenantID, groupID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("GET /groups/{id} - Exchange rate unavailable: group=%s, error=%v", groupID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("GET /groups/{id} - Failed to get group: group=%s, error=%v", groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /groups/{id} - Group retrieved successfully: tenant=%s, group=%s, members=%d",
		tenantID, groupID, len(group.Members))
	handlers.RespondJSON(w, http.StatusOK, group)
}
