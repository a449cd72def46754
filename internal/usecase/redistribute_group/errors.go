package redistribute_group

import "errors"

var (
	// ErrGroupNotFound возвращается, когда в группе нет активных бронирований
	ErrGroupNotFound = errors.New("redistribute_group: group not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("redistribute_group: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("redistribute_group: internal error")
)
