package search_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	searchAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
)

const (
	msgMissingTenant = "отсутствует ID арендатора"
	msgMissingDates  = "параметры start и end обязательны"
	msgInvalidQuery  = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRange  = "некорректный период проживания"
	msgDateInPast    = "дата заезда уже прошла"
)

type Handler struct {
	useCase          SearchAvailabilityUseCase
	includeTentative bool
	logger           Logger
}

// NewHandler includeTentative - значение по умолчанию для параметра includeTentative
func NewHandler(useCase SearchAvailabilityUseCase, includeTentative bool, logger Logger) *Handler {
	return &Handler{
		useCase:          useCase,
		includeTentative: includeTentative,
		logger:           logger,
	}
}

// Handle GET /api/v1/availability
// Query params: start, end (YYYY-MM-DD, end не входит в период), includeTentative (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	query := r.URL.Query()
	if query.Get("start") == "" || query.Get("end") == "" {
		h.logger.Warn("GET /availability - Missing dates: tenant=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, query.Get("start"), query.Get("end"), query.Get("includeTentative"), h.includeTentative)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchAvailability.ErrDateInPast):
			h.logger.Warn("GET /availability - Date in past: tenant=%s, start=%s", tenantID, useCaseReq.Start)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, searchAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid range: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability - Failed to search: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Search completed: tenant=%s, free=%d/%d",
		tenantID, len(result.FreeUnits), result.TotalUnits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
