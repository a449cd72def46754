package create_booking

import (
	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	quoteHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/price_allocation"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model. Задается либо unitIds, либо segments.
type CreateBookingRequest struct {
	Start                string                    `json:"start"` // "2025-10-15"
	End                  string                    `json:"end"`   // день выезда
	ChannelID            string                    `json:"channelId,omitempty"`
	UnitIDs              []string                  `json:"unitIds,omitempty"`
	Segments             []handlers.SegmentRequest `json:"segments,omitempty"`
	TaxMode              string                    `json:"taxMode,omitempty"` // add | included
	CommissionRate       float64                   `json:"commissionRate"`
	ChannelCostRate      float64                   `json:"channelCostRate"`
	Proposal             bool                      `json:"proposal"`
	ExchangeRateOverride *float64                  `json:"exchangeRateOverride,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	GroupID                  string                         `json:"groupId"`
	Status                   string                         `json:"status"`
	Currency                 string                         `json:"currency"`
	Total                    float64                        `json:"total"`
	TotalInOperatingCurrency float64                        `json:"totalInOperatingCurrency"`
	ExchangeRate             float64                        `json:"exchangeRate,omitempty"`
	Reservations             []models.ReservationResponse   `json:"reservations"`
	RateGaps                 []quoteHandler.RateGapResponse `json:"rateGaps"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID string) (*createBooking.Request, error) {
	start, end, err := handlers.ParseStay(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	segments, err := handlers.ParseSegments(r.Segments)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:             tenantID,
		Start:                start,
		End:                  end,
		ChannelID:            r.ChannelID,
		UnitIDs:              r.UnitIDs,
		Segments:             segments,
		TaxMode:              domain.TaxMode(r.TaxMode),
		CommissionRate:       r.CommissionRate,
		ChannelCostRate:      r.ChannelCostRate,
		Proposal:             r.Proposal,
		ExchangeRateOverride: r.ExchangeRateOverride,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		GroupID:                  resp.GroupID,
		Status:                   string(resp.Status),
		Currency:                 string(resp.Currency),
		Total:                    resp.Total,
		TotalInOperatingCurrency: resp.TotalInOperatingCurrency,
		ExchangeRate:             resp.ExchangeRate,
		Reservations:             make([]models.ReservationResponse, 0, len(resp.Reservations)),
		RateGaps:                 quoteHandler.FromRateGaps(resp.RateGaps),
	}

	for i := range resp.Reservations {
		out.Reservations = append(out.Reservations, *models.FromDomainReservation(&resp.Reservations[i]))
	}

	return out
}
