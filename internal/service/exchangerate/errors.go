package exchangerate

import "errors"

var (
	// ErrRateNotFound возвращается, когда курс не найден ни в одном источнике
	ErrRateNotFound = errors.New("exchangerate: rate not found")

	// ErrInternal возвращается при ошибках хранилища или внешнего API
	ErrInternal = errors.New("exchangerate: internal error")
)
