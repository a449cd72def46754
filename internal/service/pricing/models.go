package pricing

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Mode режим оценки
type Mode string

const (
	ModeStatic    Mode = "static"
	ModeSegmented Mode = "segmented"
)

// Allocation что именно оценивается: StaticAllocation или SegmentedAllocation
type Allocation interface {
	mode() Mode
}

// StaticAllocation набор юнитов на весь период
type StaticAllocation struct {
	Units []domain.Unit
}

func (StaticAllocation) mode() Mode { return ModeStatic }

// SegmentedAllocation маршрут по сегментам
type SegmentedAllocation struct {
	Segments []domain.Segment
}

func (SegmentedAllocation) mode() Mode { return ModeSegmented }

// ModeOf возвращает режим варианта
func ModeOf(a Allocation) Mode {
	if a == nil {
		return ""
	}
	return a.mode()
}

// Request входные данные оценки
type Request struct {
	TenantID   string
	Allocation Allocation
	Range      domain.DateRange
	Rates      *domain.RateTable
	Channels   *domain.ChannelRegistry
	// TargetChannelID канал, для которого считается цена; пустой = канал по умолчанию
	TargetChannelID string
	// ExchangeRateOverride курс, заданный вызывающим; иначе берется курс на дату заезда
	ExchangeRateOverride *float64
}

// LineItem цена одного юнита (static) или одного сегмента (segmented)
// Суммы не округлены
type LineItem struct {
	UnitID string
	Span   domain.DateRange
	Nights int
	// BaseTotal сумма в валюте канала по умолчанию после модификатора
	BaseTotal float64
	// Total сумма в валюте целевого канала
	Total float64
	// TotalInOperatingCurrency сумма в операционной валюте (CLP)
	TotalInOperatingCurrency float64
}

// RateGap день юнита без покрывающего тарифа, оценен в 0
type RateGap struct {
	UnitID string
	Day    types.Date
}

// Result результат оценки
type Result struct {
	Mode           Mode
	Channel        domain.Channel
	DefaultChannel domain.Channel
	Currency       money.Currency
	// Total округлено до минимальной единицы Currency
	Total float64
	// TotalInOperatingCurrency округлено до CLP
	TotalInOperatingCurrency float64
	Nights                   int
	// ExchangeRate использованный курс; 0, если конвертация не понадобилась
	ExchangeRate float64
	Breakdown    []LineItem
	RateGaps     []RateGap
}
