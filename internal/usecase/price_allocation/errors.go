package price_allocation

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит размещения не найден у арендатора
	ErrUnitNotFound = errors.New("price_allocation: unit not found")

	// ErrInvalidAllocation возвращается при пустом или несогласованном размещении
	ErrInvalidAllocation = errors.New("price_allocation: invalid allocation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("price_allocation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("price_allocation: internal error")
)
