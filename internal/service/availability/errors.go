package availability

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения юнитов, тарифов или занятости
	ErrInternal = errors.New("availability: internal error")
)
