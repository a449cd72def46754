package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// SegmentSpec сегмент маршрута в том виде, в каком его присылает клиент
type SegmentSpec struct {
	UnitID string
	Span   domain.DateRange
}

// BuildAllocation собирает размещение по идентификаторам юнитов из каталога арендатора.
// Должен быть задан ровно один из unitIDs и segments. Сегменты должны идти подряд
// и покрывать rng целиком.
func BuildAllocation(catalog []domain.Unit, unitIDs []string, segments []SegmentSpec, rng domain.DateRange) (Allocation, error) {
	switch {
	case len(unitIDs) > 0 && len(segments) > 0:
		return nil, fmt.Errorf("%w: both units and segments given", ErrUnknownAllocation)
	case len(unitIDs) == 0 && len(segments) == 0:
		return nil, ErrEmptyAllocation
	}

	byID := make(map[string]domain.Unit, len(catalog))
	for _, u := range catalog {
		byID[u.ID] = u
	}

	if len(unitIDs) > 0 {
		seen := make(map[string]bool, len(unitIDs))
		units := make([]domain.Unit, 0, len(unitIDs))
		for _, id := range unitIDs {
			u, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, id)
			}
			if seen[id] {
				return nil, fmt.Errorf("%w: unit %s listed twice", ErrUnknownAllocation, id)
			}
			seen[id] = true
			units = append(units, u)
		}
		return StaticAllocation{Units: units}, nil
	}

	cursor := rng.Start
	out := make([]domain.Segment, 0, len(segments))
	for _, s := range segments {
		u, ok := byID[s.UnitID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, s.UnitID)
		}
		if !s.Span.Start.Equal(cursor) || !s.Span.End.After(s.Span.Start) {
			return nil, fmt.Errorf("%w: segment %s of unit %s, expected start %s", ErrInvalidItinerary, s.Span, s.UnitID, cursor)
		}
		out = append(out, domain.Segment{Unit: u, Span: s.Span})
		cursor = s.Span.End
	}
	if !cursor.Equal(rng.End) {
		return nil, fmt.Errorf("%w: itinerary ends on %s, range ends on %s", ErrInvalidItinerary, cursor, rng.End)
	}

	return SegmentedAllocation{Segments: out}, nil
}
