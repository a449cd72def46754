package search_combination

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	searchCombination "github.com/m04kA/SMC-RentalService/internal/usecase/search_combination"
)

const (
	msgMissingTenant   = "отсутствует ID арендатора"
	msgMissingParams   = "параметры start, end и capacity обязательны"
	msgInvalidQuery    = "некорректные параметры запроса"
	msgInvalidMode     = "неизвестный режим поиска, ожидается static, segmented или auto"
	msgInvalidInput    = "некорректный период или количество гостей"
	msgInvalidOverride = "замену юнита нельзя применить к маршруту"
	msgDateInPast      = "дата заезда уже прошла"
)

type Handler struct {
	useCase          SearchCombinationUseCase
	includeTentative bool
	logger           Logger
}

// NewHandler includeTentative - значение по умолчанию для параметра includeTentative
func NewHandler(useCase SearchCombinationUseCase, includeTentative bool, logger Logger) *Handler {
	return &Handler{
		useCase:          useCase,
		includeTentative: includeTentative,
		logger:           logger,
	}
}

// Handle GET /api/v1/availability/combination
// Query params: start, end, capacity (required), mode (static|segmented|auto, optional),
// includeTentative (optional), override=YYYY-MM-DD:unitId (optional, repeatable)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability/combination - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	query := r.URL.Query()
	if query.Get("start") == "" || query.Get("end") == "" || query.Get("capacity") == "" {
		h.logger.Warn("GET /availability/combination - Missing params: tenant=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, query.Get("start"), query.Get("end"),
		query.Get("capacity"), query.Get("mode"), query.Get("includeTentative"), query["override"], h.includeTentative)
	if err != nil {
		h.logger.Warn("GET /availability/combination - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchCombination.ErrInvalidMode):
			h.logger.Warn("GET /availability/combination - Invalid mode: tenant=%s, mode=%s", tenantID, useCaseReq.Mode)
			handlers.RespondBadRequest(w, msgInvalidMode)

		case errors.Is(err, searchCombination.ErrDateInPast):
			h.logger.Warn("GET /availability/combination - Date in past: tenant=%s, start=%s", tenantID, useCaseReq.Start)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, searchCombination.ErrInvalidOverride):
			h.logger.Warn("GET /availability/combination - Invalid override: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		case errors.Is(err, searchCombination.ErrInvalidInput):
			h.logger.Warn("GET /availability/combination - Invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/combination - Failed to search: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/combination - Search completed: tenant=%s, capacity=%d, mode=%s, found=%t",
		tenantID, result.Capacity, result.Mode, result.Found)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
