package create_booking

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден у арендатора
	ErrUnitNotFound = errors.New("create_booking: unit not found")

	// ErrUnitNotAvailable возвращается, когда юнит уже занят в запрошенный период
	ErrUnitNotAvailable = errors.New("create_booking: unit is not available")

	// ErrInvalidAllocation возвращается при пустом или несогласованном размещении
	ErrInvalidAllocation = errors.New("create_booking: invalid allocation")

	// ErrDateInPast возвращается, когда дата заезда уже прошла
	ErrDateInPast = errors.New("create_booking: check-in date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
