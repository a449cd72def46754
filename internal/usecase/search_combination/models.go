package search_combination

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/combination"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Mode режим поиска комбинации
type Mode string

const (
	// ModeStatic несколько юнитов на весь период
	ModeStatic Mode = "static"
	// ModeSegmented по одному юниту на каждый день, юнит может меняться в течение проживания
	ModeSegmented Mode = "segmented"
	// ModeAuto сначала static, при пустом результате segmented
	ModeAuto Mode = "auto"
)

// Request модель запроса поиска комбинации юнитов
type Request struct {
	TenantID         string     // ID арендатора
	Start            types.Date // Дата заезда
	End              types.Date // Дата выезда (не входит в период)
	Capacity         int        // Требуемое количество гостей
	Mode             Mode       // Режим поиска; пустой означает auto
	IncludeTentative bool       // Учитывать предварительные бронирования как занятость
	// Overrides ручные назначения юнитов на дни маршрута, применяются по порядку.
	// Допустимы только для режимов segmented и auto; auto с заменами сразу строит маршрут.
	Overrides []DayOverride
}

// DayOverride ручное назначение юнита на день маршрута
type DayOverride struct {
	Day    types.Date
	UnitID string
}

// Response модель ответа с найденной комбинацией.
// Отсутствие вариантов не является ошибкой: Found = false, результаты пустые.
type Response struct {
	Range     domain.DateRange
	Capacity  int
	Mode      Mode // Режим, давший результат (для auto - последний примененный)
	Found     bool
	Static    *combination.StaticResult
	Segmented *combination.SegmentedResult
}
