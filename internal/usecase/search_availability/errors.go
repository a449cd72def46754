package search_availability

import "errors"

var (
	// ErrDateInPast возвращается, когда заезд раньше сегодняшнего дня
	ErrDateInPast = errors.New("search_availability: check-in is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_availability: internal error")
)
