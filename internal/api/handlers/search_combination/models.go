package search_combination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/combination"
	searchCombination "github.com/m04kA/SMC-RentalService/internal/usecase/search_combination"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UnitResponse HTTP модель юнита
type UnitResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// StaticResponse набор юнитов на весь период
type StaticResponse struct {
	Units         []UnitResponse `json:"units"`
	TotalCapacity int            `json:"totalCapacity"`
}

// SegmentResponse сегмент маршрута
type SegmentResponse struct {
	Unit   UnitResponse `json:"unit"`
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Nights int          `json:"nights"`
}

// DayOptionsResponse юниты, способные принять всю группу в этот день
type DayOptionsResponse struct {
	Day     string   `json:"day"`
	UnitIDs []string `json:"unitIds"`
}

// SegmentedResponse маршрут со сменой юнита
type SegmentedResponse struct {
	Itinerary    []SegmentResponse    `json:"itinerary"`
	DailyOptions []DayOptionsResponse `json:"dailyOptions"`
}

// CombinationResponse HTTP response model
type CombinationResponse struct {
	Start     string             `json:"start"`
	End       string             `json:"end"`
	Capacity  int                `json:"capacity"`
	Mode      string             `json:"mode"`
	Found     bool               `json:"found"`
	Static    *StaticResponse    `json:"static,omitempty"`
	Segmented *SegmentedResponse `json:"segmented,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из query параметров.
// overrides - значения параметра override в формате YYYY-MM-DD:unitId.
func ToUseCaseRequest(tenantID, start, end, capacity, mode, includeTentative string, overrides []string, defaultTentative bool) (*searchCombination.Request, error) {
	startDate, err := types.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	endDate, err := types.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	pax, err := strconv.Atoi(capacity)
	if err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}

	tentative := defaultTentative
	if includeTentative != "" {
		tentative, err = strconv.ParseBool(includeTentative)
		if err != nil {
			return nil, fmt.Errorf("includeTentative: %w", err)
		}
	}

	dayOverrides := make([]searchCombination.DayOverride, 0, len(overrides))
	for _, raw := range overrides {
		day, unitID, ok := strings.Cut(raw, ":")
		if !ok || unitID == "" {
			return nil, fmt.Errorf("override %q: expected YYYY-MM-DD:unitId", raw)
		}
		date, err := types.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", raw, err)
		}
		dayOverrides = append(dayOverrides, searchCombination.DayOverride{Day: date, UnitID: unitID})
	}

	return &searchCombination.Request{
		TenantID:         tenantID,
		Start:            startDate,
		End:              endDate,
		Capacity:         pax,
		Mode:             searchCombination.Mode(mode),
		IncludeTentative: tentative,
		Overrides:        dayOverrides,
	}, nil
}

func fromUnit(u domain.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Name: u.Name, Capacity: u.Capacity}
}

func fromStatic(r *combination.StaticResult) *StaticResponse {
	if r == nil {
		return nil
	}
	units := make([]UnitResponse, 0, len(r.Units))
	for _, u := range r.Units {
		units = append(units, fromUnit(u))
	}
	return &StaticResponse{Units: units, TotalCapacity: r.TotalCapacity}
}

func fromSegmented(r *combination.SegmentedResult) *SegmentedResponse {
	if r == nil {
		return nil
	}

	out := &SegmentedResponse{
		Itinerary:    make([]SegmentResponse, 0, len(r.Itinerary)),
		DailyOptions: make([]DayOptionsResponse, 0, len(r.DailyOptions)),
	}
	for _, s := range r.Itinerary {
		out.Itinerary = append(out.Itinerary, SegmentResponse{
			Unit:   fromUnit(s.Unit),
			Start:  s.Span.Start.String(),
			End:    s.Span.End.String(),
			Nights: s.Span.Nights(),
		})
	}
	for _, o := range r.DailyOptions {
		ids := make([]string, 0, len(o.Units))
		for _, u := range o.Units {
			ids = append(ids, u.ID)
		}
		out.DailyOptions = append(out.DailyOptions, DayOptionsResponse{Day: o.Day.String(), UnitIDs: ids})
	}
	return out
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchCombination.Response) *CombinationResponse {
	return &CombinationResponse{
		Start:     resp.Range.Start.String(),
		End:       resp.Range.End.String(),
		Capacity:  resp.Capacity,
		Mode:      string(resp.Mode),
		Found:     resp.Found,
		Static:    fromStatic(resp.Static),
		Segmented: fromSegmented(resp.Segmented),
	}
}
