package derive_values

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTaxMode      = "неизвестный налоговый режим"
	msgInvalidAmount       = "некорректная сумма"
	msgUnsupportedCurrency = "валюта не поддерживается"
)

type Handler struct {
	calculator ValueCalculator
	logger     Logger
}

func NewHandler(calculator ValueCalculator, logger Logger) *Handler {
	return &Handler{
		calculator: calculator,
		logger:     logger,
	}
}

// Handle POST /api/v1/values/derive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeriveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /values/derive - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	set, err := h.calculator.Derive(req.Payout, req.Commission, req.ChannelCost, domain.TaxMode(req.TaxMode), money.Currency(req.Currency))
	if err != nil {
		switch {
		case errors.Is(err, valueledger.ErrInvalidTaxMode):
			h.logger.Warn("POST /values/derive - Invalid tax mode: %s", req.TaxMode)
			handlers.RespondBadRequest(w, msgInvalidTaxMode)

		case errors.Is(err, valueledger.ErrInvalidAmount):
			h.logger.Warn("POST /values/derive - Invalid amount: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, money.ErrUnsupportedCurrency):
			h.logger.Warn("POST /values/derive - Unsupported currency: %s", req.Currency)
			handlers.RespondBadRequest(w, msgUnsupportedCurrency)

		default:
			h.logger.Error("POST /values/derive - Failed to derive values: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromValueSet(set))
}
