package search_availability

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	searchAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UnitResponse HTTP модель юнита
type UnitResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Nights     int            `json:"nights"`
	TotalUnits int            `json:"totalUnits"`
	FreeUnits  []UnitResponse `json:"freeUnits"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(tenantID, start, end, includeTentative string, defaultTentative bool) (*searchAvailability.Request, error) {
	startDate, err := types.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	endDate, err := types.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	tentative := defaultTentative
	if includeTentative != "" {
		tentative, err = strconv.ParseBool(includeTentative)
		if err != nil {
			return nil, fmt.Errorf("includeTentative: %w", err)
		}
	}

	return &searchAvailability.Request{
		TenantID:         tenantID,
		Start:            startDate,
		End:              endDate,
		IncludeTentative: tentative,
	}, nil
}

// FromUnits конвертирует юниты в DTO
func FromUnits(units []domain.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, UnitResponse{ID: u.ID, Name: u.Name, Capacity: u.Capacity})
	}
	return out
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Start:      resp.Range.Start.String(),
		End:        resp.Range.End.String(),
		Nights:     resp.Nights,
		TotalUnits: resp.TotalUnits,
		FreeUnits:  FromUnits(resp.FreeUnits),
	}
}
