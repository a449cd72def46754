package fxapi

// indicatorResponse ответ индикатора на дату, например GET /dolar/15-01-2025
type indicatorResponse struct {
	Code  string       `json:"codigo"`
	Unit  string       `json:"unidad_medida"`
	Serie []seriePoint `json:"serie"`
}

type seriePoint struct {
	Date  string  `json:"fecha"`
	Value float64 `json:"valor"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
