package price_allocation

import (
	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	priceAllocation "github.com/m04kA/SMC-RentalService/internal/usecase/price_allocation"
)

// QuoteRequest HTTP request model. Задается либо unitIds, либо segments.
type QuoteRequest struct {
	Start                string                    `json:"start"` // "2025-10-15"
	End                  string                    `json:"end"`   // день выезда
	ChannelID            string                    `json:"channelId,omitempty"`
	UnitIDs              []string                  `json:"unitIds,omitempty"`
	Segments             []handlers.SegmentRequest `json:"segments,omitempty"`
	ExchangeRateOverride *float64                  `json:"exchangeRateOverride,omitempty"`
}

// LineItemResponse цена юнита или сегмента
type LineItemResponse struct {
	UnitID                   string  `json:"unitId"`
	Start                    string  `json:"start"`
	End                      string  `json:"end"`
	Nights                   int     `json:"nights"`
	BaseTotal                float64 `json:"baseTotal"`
	Total                    float64 `json:"total"`
	TotalInOperatingCurrency float64 `json:"totalInOperatingCurrency"`
}

// RateGapResponse день без тарифа
type RateGapResponse struct {
	UnitID string `json:"unitId"`
	Day    string `json:"day"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	Mode                     string             `json:"mode"`
	ChannelID                string             `json:"channelId"`
	DefaultChannelID         string             `json:"defaultChannelId"`
	Currency                 string             `json:"currency"`
	Total                    float64            `json:"total"`
	OperatingCurrency        string             `json:"operatingCurrency"`
	TotalInOperatingCurrency float64            `json:"totalInOperatingCurrency"`
	Nights                   int                `json:"nights"`
	ExchangeRate             float64            `json:"exchangeRate,omitempty"`
	Breakdown                []LineItemResponse `json:"breakdown"`
	RateGaps                 []RateGapResponse  `json:"rateGaps"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(tenantID string) (*priceAllocation.Request, error) {
	start, end, err := handlers.ParseStay(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	segments, err := handlers.ParseSegments(r.Segments)
	if err != nil {
		return nil, err
	}

	return &priceAllocation.Request{
		TenantID:             tenantID,
		Start:                start,
		End:                  end,
		ChannelID:            r.ChannelID,
		UnitIDs:              r.UnitIDs,
		Segments:             segments,
		ExchangeRateOverride: r.ExchangeRateOverride,
	}, nil
}

// FromPricingResult конвертирует результат оценки в HTTP response
func FromPricingResult(res *pricing.Result) *QuoteResponse {
	out := &QuoteResponse{
		Mode:                     string(res.Mode),
		ChannelID:                res.Channel.ID,
		DefaultChannelID:         res.DefaultChannel.ID,
		Currency:                 string(res.Currency),
		Total:                    res.Total,
		OperatingCurrency:        string(pricing.OperatingCurrency),
		TotalInOperatingCurrency: res.TotalInOperatingCurrency,
		Nights:                   res.Nights,
		ExchangeRate:             res.ExchangeRate,
		Breakdown:                make([]LineItemResponse, 0, len(res.Breakdown)),
		RateGaps:                 FromRateGaps(res.RateGaps),
	}

	for _, it := range res.Breakdown {
		out.Breakdown = append(out.Breakdown, LineItemResponse{
			UnitID:                   it.UnitID,
			Start:                    it.Span.Start.String(),
			End:                      it.Span.End.String(),
			Nights:                   it.Nights,
			BaseTotal:                it.BaseTotal,
			Total:                    it.Total,
			TotalInOperatingCurrency: it.TotalInOperatingCurrency,
		})
	}

	return out
}

// FromRateGaps конвертирует дни без тарифа в DTO
func FromRateGaps(gaps []pricing.RateGap) []RateGapResponse {
	out := make([]RateGapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, RateGapResponse{UnitID: g.UnitID, Day: g.Day.String()})
	}
	return out
}
