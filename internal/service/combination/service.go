package combination

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// StaticResult набор юнитов на весь период
// Пустой Units означает отсутствие доступности, это не ошибка
type StaticResult struct {
	Units         []domain.Unit
	TotalCapacity int
}

// IsEmpty проверяет, что подходящего набора не найдено
func (r StaticResult) IsEmpty() bool {
	return len(r.Units) == 0
}

// SegmentedResult маршрут по дням, возможно со сменой юнита в середине проживания
// DailyOptions возвращаются даже если маршрут не построен
type SegmentedResult struct {
	Itinerary    []domain.Segment
	DailyOptions []domain.DayOptions
}

// IsEmpty проверяет, что маршрут не построен
func (r SegmentedResult) IsEmpty() bool {
	return len(r.Itinerary) == 0
}

// FindStatic жадно набирает юниты от большей вместимости к меньшей, пока не наберется required.
// Юниты с одинаковой вместимостью сохраняют исходный порядок.
func FindStatic(free []domain.Unit, required int) StaticResult {
	sorted := make([]domain.Unit, len(free))
	copy(sorted, free)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity > sorted[j].Capacity
	})

	picked := make([]domain.Unit, 0, len(sorted))
	total := 0
	for _, u := range sorted {
		if total >= required {
			break
		}
		picked = append(picked, u)
		total += u.Capacity
	}

	if total < required || len(picked) == 0 {
		return StaticResult{Units: []domain.Unit{}, TotalCapacity: 0}
	}

	return StaticResult{Units: picked, TotalCapacity: total}
}

// FindSegmented строит маршрут, в котором каждый день покрывается одним юнитом
// с тарифом на этот день, без занятости и с вместимостью не меньше required.
// Если хотя бы у одного дня нет вариантов, маршрут пустой.
func FindSegmented(
	units []domain.Unit,
	rates *domain.RateTable,
	occupancy domain.OccupancyByUnit,
	required int,
	rng domain.DateRange,
) SegmentedResult {
	days := rng.Days()
	options := make([]domain.DayOptions, 0, len(days))
	covered := true

	for _, day := range days {
		dayUnits := make([]domain.Unit, 0)
		for _, u := range units {
			if u.Capacity < required {
				continue
			}
			if !rates.IsRatedOn(u.ID, day) {
				continue
			}
			if occupancy.OccupiedOn(u.ID, day) {
				continue
			}
			dayUnits = append(dayUnits, u)
		}
		if len(dayUnits) == 0 {
			covered = false
		}
		options = append(options, domain.DayOptions{Day: day, Units: dayUnits})
	}

	if !covered || len(options) == 0 {
		return SegmentedResult{Itinerary: []domain.Segment{}, DailyOptions: options}
	}

	return SegmentedResult{
		Itinerary:    Stitch(firstChoice(options)),
		DailyOptions: options,
	}
}

// firstChoice выбирает юнит на каждый день: остается на текущем юните,
// пока он есть среди вариантов дня, иначе берет первый вариант дня
func firstChoice(options []domain.DayOptions) []domain.DayAssignment {
	assignments := make([]domain.DayAssignment, 0, len(options))
	var current domain.Unit

	for i, opt := range options {
		if i == 0 || !opt.Has(current.ID) {
			current = opt.Units[0]
		}
		assignments = append(assignments, domain.DayAssignment{Day: opt.Day, Unit: current})
	}

	return assignments
}

// Stitch склеивает последовательные дни одного юнита в сегменты.
// Дни должны идти подряд и по возрастанию.
func Stitch(assignments []domain.DayAssignment) []domain.Segment {
	segments := make([]domain.Segment, 0)

	for _, a := range assignments {
		next := a.Day.AddDays(1)
		if n := len(segments); n > 0 {
			last := &segments[n-1]
			if last.Unit.ID == a.Unit.ID && last.Span.End.Equal(a.Day) {
				last.Span.End = next
				continue
			}
		}
		segments = append(segments, domain.Segment{
			Unit: a.Unit,
			Span: domain.DateRange{Start: a.Day, End: next},
		})
	}

	return segments
}

// OverrideDay вручную назначает юнит на день маршрута и пересобирает сегменты.
// Юнит должен быть среди вариантов этого дня.
func OverrideDay(result SegmentedResult, day types.Date, unitID string) (SegmentedResult, error) {
	if result.IsEmpty() {
		return result, fmt.Errorf("%w: itinerary is empty", ErrDayNotInItinerary)
	}

	assignments := dayAssignments(result.Itinerary)

	idx := -1
	for i, a := range assignments {
		if a.Day.Equal(day) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return result, fmt.Errorf("%w: %s", ErrDayNotInItinerary, day)
	}

	var chosen *domain.Unit
	for _, opt := range result.DailyOptions {
		if !opt.Day.Equal(day) {
			continue
		}
		for i := range opt.Units {
			if opt.Units[i].ID == unitID {
				chosen = &opt.Units[i]
				break
			}
		}
	}
	if chosen == nil {
		return result, fmt.Errorf("%w: unit %s on %s", ErrUnitNotAnOption, unitID, day)
	}

	assignments[idx].Unit = *chosen

	return SegmentedResult{
		Itinerary:    Stitch(assignments),
		DailyOptions: result.DailyOptions,
	}, nil
}

// dayAssignments разворачивает сегменты обратно в назначения по дням
func dayAssignments(segments []domain.Segment) []domain.DayAssignment {
	out := make([]domain.DayAssignment, 0)
	for _, s := range segments {
		for _, day := range s.Span.Days() {
			out = append(out, domain.DayAssignment{Day: day, Unit: s.Unit})
		}
	}
	return out
}
