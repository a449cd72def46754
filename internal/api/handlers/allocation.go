package handlers

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// SegmentRequest сегмент маршрута в теле запроса
type SegmentRequest struct {
	UnitID string `json:"unitId"`
	Start  string `json:"start"` // "2025-10-15"
	End    string `json:"end"`   // день выезда из юнита, не входит в сегмент
}

// ParseStay разбирает даты заезда и выезда
func ParseStay(start, end string) (types.Date, types.Date, error) {
	startDate, err := types.ParseDate(start)
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("start: %w", err)
	}
	endDate, err := types.ParseDate(end)
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("end: %w", err)
	}
	return startDate, endDate, nil
}

// ParseSegments разбирает маршрут; связность сегментов проверяет слой use case
func ParseSegments(segments []SegmentRequest) ([]pricing.SegmentSpec, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	out := make([]pricing.SegmentSpec, 0, len(segments))
	for i, s := range segments {
		start, end, err := ParseStay(s.Start, s.End)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, pricing.SegmentSpec{
			UnitID: s.UnitID,
			Span:   domain.DateRange{Start: start, End: end},
		})
	}
	return out, nil
}
