package price_allocation

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса на расчет цены размещения
type Request struct {
	TenantID             string                // ID арендатора
	Start                types.Date            // Дата заезда
	End                  types.Date            // Дата выезда (не входит в период)
	ChannelID            string                // Канал продаж; пустой - канал по умолчанию
	UnitIDs              []string              // Статическое размещение
	Segments             []pricing.SegmentSpec // Посуточный маршрут
	ExchangeRateOverride *float64              // Курс CLP за USD вместо курса провайдера
}

// Response модель ответа с ценой
type Response struct {
	Range  domain.DateRange
	Result *pricing.Result
}
