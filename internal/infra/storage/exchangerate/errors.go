package exchangerate

import "errors"

var (
	// ErrRateNotFound возвращается, когда курс на дату не сохранен
	ErrRateNotFound = errors.New("exchangerate.repository: rate not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("exchangerate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("exchangerate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("exchangerate.repository: failed to scan row")
)
