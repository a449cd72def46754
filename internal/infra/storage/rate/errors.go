package rate

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rate.repository: failed to scan row")

	// ErrInvalidPrices возвращается, когда колонка prices не является JSON-объектом цен
	ErrInvalidPrices = errors.New("rate.repository: invalid prices document")
)
