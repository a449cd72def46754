package search_combination

import "errors"

var (
	// ErrDateInPast возвращается, когда заезд раньше сегодняшнего дня
	ErrDateInPast = errors.New("search_combination: check-in is in the past")

	// ErrInvalidMode возвращается при неизвестном режиме поиска
	ErrInvalidMode = errors.New("search_combination: unknown search mode")

	// ErrInvalidOverride возвращается, когда ручную замену нельзя применить к маршруту
	ErrInvalidOverride = errors.New("search_combination: override cannot be applied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_combination: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_combination: internal error")
)
