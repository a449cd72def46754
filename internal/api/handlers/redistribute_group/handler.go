package redistribute_group

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	redistributeGroup "github.com/m04kA/SMC-RentalService/internal/usecase/redistribute_group"
)

const (
	msgMissingTenant       = "отсутствует ID арендатора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректный итог группы"
	msgGroupNotFound       = "группа бронирований не найдена"
	msgInconsistentGroup   = "бронирования группы оцениваются в разных валютах, налоговых режимах или по разным курсам"
	msgExchangeUnavailable = "курс валют недоступен"
)

type Handler struct {
	useCase RedistributeGroupUseCase
	logger  Logger
}

func NewHandler(useCase RedistributeGroupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/groups/{groupId}/total
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /groups/{id}/total - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	groupID := mux.Vars(r)["groupId"]

	var req RedistributeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /groups/{id}/total - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, groupID))
	if err != nil {
		switch {
		case errors.Is(err, redistributeGroup.ErrGroupNotFound):
			h.logger.Warn("PUT /groups/{id}/total - Group not found: tenant=%s, group=%s", tenantID, groupID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, redistributeGroup.ErrInvalidInput):
			h.logger.Warn("PUT /groups/{id}/total - Invalid input: group=%s, error=%v", groupID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrRedistributionInput):
			h.logger.Warn("PUT /groups/{id}/total - Inconsistent group: group=%s, error=%v", groupID, err)
			handlers.RespondUnprocessable(w, msgInconsistentGroup)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("PUT /groups/{id}/total - Exchange rate unavailable: group=%s, error=%v", groupID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("PUT /groups/{id}/total - Failed to redistribute: group=%s, error=%v", groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /groups/{id}/total - Group total updated: tenant=%s, group=%s, total=%v %s",
		tenantID, groupID, result.NewTotal, result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
