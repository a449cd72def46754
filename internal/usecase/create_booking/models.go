package create_booking

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса на создание группы бронирований
type Request struct {
	TenantID  string                // ID арендатора
	Start     types.Date            // Дата заезда
	End       types.Date            // Дата выезда (не входит в период)
	ChannelID string                // Канал продаж; пустой - канал по умолчанию
	UnitIDs   []string              // Статическое размещение
	Segments  []pricing.SegmentSpec // Посуточный маршрут
	TaxMode   domain.TaxMode        // Режим налога; пустой - add

	// CommissionRate доля комиссии канала от итога гостя (0..1)
	CommissionRate float64
	// ChannelCostRate доля прочих расходов канала от итога гостя (0..1)
	ChannelCostRate float64

	// Proposal создать предварительное бронирование (proposed) вместо подтвержденного
	Proposal             bool
	ExchangeRateOverride *float64 // Курс CLP за USD вместо курса провайдера
}

// Response модель ответа с созданной группой
type Response struct {
	GroupID                  string
	Status                   domain.ManagementStatus
	Currency                 money.Currency
	Total                    float64 // Итог гостя в валюте канала
	TotalInOperatingCurrency float64
	ExchangeRate             float64
	Reservations             []domain.Reservation
	RateGaps                 []pricing.RateGap
}
