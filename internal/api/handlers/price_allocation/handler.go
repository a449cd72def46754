package price_allocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	priceAllocation "github.com/m04kA/SMC-RentalService/internal/usecase/price_allocation"
)

const (
	msgMissingTenant       = "отсутствует ID арендатора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректный период или курс"
	msgInvalidAllocation   = "нужно указать либо юниты, либо маршрут без пропусков и пересечений"
	msgUnitNotFound        = "юнит не найден"
	msgChannelNotFound     = "канал продаж не найден"
	msgConfiguration       = "каналы продаж настроены некорректно"
	msgExchangeUnavailable = "курс валют недоступен"
)

type Handler struct {
	useCase PriceAllocationUseCase
	logger  Logger
}

func NewHandler(useCase PriceAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /quotes - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, priceAllocation.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, priceAllocation.ErrInvalidAllocation):
			h.logger.Warn("POST /quotes - Invalid allocation: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidAllocation)

		case errors.Is(err, priceAllocation.ErrUnitNotFound):
			h.logger.Warn("POST /quotes - Unit not found: tenant=%s, error=%v", tenantID, err)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, domain.ErrInvalidChannel):
			h.logger.Warn("POST /quotes - Channel not found: tenant=%s, channel=%s", tenantID, req.ChannelID)
			handlers.RespondNotFound(w, msgChannelNotFound)

		case errors.Is(err, domain.ErrConfiguration):
			h.logger.Error("POST /quotes - Channel configuration error: tenant=%s, error=%v", tenantID, err)
			handlers.RespondUnprocessable(w, msgConfiguration)

		case errors.Is(err, domain.ErrExchangeRateUnavailable):
			h.logger.Error("POST /quotes - Exchange rate unavailable: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExchangeUnavailable)

		default:
			h.logger.Error("POST /quotes - Failed to price allocation: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: tenant=%s, mode=%s, total=%v %s",
		tenantID, result.Result.Mode, result.Result.Total, result.Result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromPricingResult(result.Result))
}
