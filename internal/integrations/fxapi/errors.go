package fxapi

import "errors"

var (
	// ErrRateNotFound возвращается, когда на дату нет опубликованного курса (выходные, праздники)
	ErrRateNotFound = errors.New("fxapi client: rate not published for date")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fxapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fxapi client: invalid response")
)
