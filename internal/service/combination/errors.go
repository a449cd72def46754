package combination

import "errors"

var (
	// ErrDayNotInItinerary возвращается, когда день не входит в маршрут
	ErrDayNotInItinerary = errors.New("combination: day is not part of the itinerary")

	// ErrUnitNotAnOption возвращается, когда юнит не подходит на выбранный день
	ErrUnitNotAnOption = errors.New("combination: unit is not an option for the day")
)
