package search_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса поиска свободных юнитов
type Request struct {
	TenantID         string     // ID арендатора
	Start            types.Date // Дата заезда
	End              types.Date // Дата выезда (не входит в период)
	IncludeTentative bool       // Учитывать предварительные бронирования как занятость
}

// Response модель ответа со свободными юнитами
type Response struct {
	Range      domain.DateRange // Запрошенный период
	Nights     int              // Количество ночей
	FreeUnits  []domain.Unit    // Свободные юниты в порядке каталога
	TotalUnits int              // Всего юнитов у арендатора
}
