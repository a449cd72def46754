package redistribute_group

import (
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	redistributeGroup "github.com/m04kA/SMC-RentalService/internal/usecase/redistribute_group"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// RedistributeRequest HTTP request model
type RedistributeRequest struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency,omitempty"` // валюта введенного итога; пустая - CLP
}

// RedistributeResponse HTTP response model
type RedistributeResponse struct {
	GroupID       string                       `json:"groupId"`
	Currency      string                       `json:"currency"`
	NewTotal      float64                      `json:"newTotal"`
	PreviousTotal float64                      `json:"previousTotal"`
	AnchorTotal   float64                      `json:"anchorTotal"`
	Adjustment    float64                      `json:"adjustment"`
	EqualSplit    bool                         `json:"equalSplit"`
	ExchangeRate  float64                      `json:"exchangeRate,omitempty"`
	Reservations  []models.ReservationResponse `json:"reservations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RedistributeRequest) ToUseCaseRequest(tenantID, groupID string) *redistributeGroup.Request {
	return &redistributeGroup.Request{
		TenantID: tenantID,
		GroupID:  groupID,
		NewTotal: r.Total,
		Currency: money.Currency(r.Currency),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *redistributeGroup.Response) *RedistributeResponse {
	out := &RedistributeResponse{
		GroupID:       resp.GroupID,
		Currency:      string(resp.Currency),
		NewTotal:      resp.NewTotal,
		PreviousTotal: resp.PreviousTotal,
		AnchorTotal:   resp.AnchorTotal,
		Adjustment:    resp.Adjustment,
		EqualSplit:    resp.EqualSplit,
		ExchangeRate:  resp.ExchangeRate,
		Reservations:  make([]models.ReservationResponse, 0, len(resp.Reservations)),
	}
	for i := range resp.Reservations {
		out.Reservations = append(out.Reservations, *models.FromDomainReservation(&resp.Reservations[i]))
	}
	return out
}
