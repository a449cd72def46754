package pricing

import "errors"

var (
	// ErrEmptyAllocation возвращается при попытке оценить пустой набор юнитов или маршрут
	ErrEmptyAllocation = errors.New("pricing: allocation is empty")

	// ErrUnknownAllocation возвращается для неизвестного варианта Allocation
	ErrUnknownAllocation = errors.New("pricing: unknown allocation kind")
)

var (
	// ErrUnknownUnit возвращается, когда в размещении указан юнит, которого нет у арендатора
	ErrUnknownUnit = errors.New("pricing: unknown unit")

	// ErrInvalidItinerary возвращается, когда сегменты не покрывают период встык
	ErrInvalidItinerary = errors.New("pricing: segments must cover the range without gaps or overlaps")
)
