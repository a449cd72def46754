package pricing

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// OperatingCurrency валюта, в которой арендатор видит итоги
const OperatingCurrency = money.CLP

// Engine считает цену размещения для канала продаж
type Engine struct {
	rates   ExchangeRateProvider
	metrics *metrics.Metrics
	logger  Logger
}

// NewEngine создает движок ценообразования; m может быть nil
func NewEngine(rates ExchangeRateProvider, m *metrics.Metrics, logger Logger) *Engine {
	return &Engine{
		rates:   rates,
		metrics: m,
		logger:  logger,
	}
}

// pricingContext параметры, общие для обоих режимов
type pricingContext struct {
	rates  *domain.RateTable
	def    domain.Channel
	target domain.Channel
	modify bool
	rate   float64
	gaps   []RateGap
	logger Logger
	mode   Mode
}

// Price оценивает размещение. Ошибки конфигурации каналов и отсутствие курса
// прерывают расчет целиком; дни без тарифа оцениваются в 0 и попадают в RateGaps.
func (e *Engine) Price(ctx context.Context, req Request) (*Result, error) {
	mode := ModeOf(req.Allocation)

	if req.Channels == nil {
		return nil, domain.ErrNoDefaultChannel
	}
	def := req.Channels.Default()

	target := def
	if req.TargetChannelID != "" && req.TargetChannelID != def.ID {
		ch, err := req.Channels.Get(req.TargetChannelID)
		if err != nil {
			return nil, err
		}
		target = ch
	}

	if !def.Currency.IsSupported() || !target.Currency.IsSupported() {
		return nil, fmt.Errorf("%w: %s -> %s: %v", domain.ErrConfiguration, def.Currency, target.Currency, money.ErrUnsupportedCurrency)
	}

	rate, err := e.resolveRate(ctx, req, def, target)
	if err != nil {
		return nil, err
	}

	rates := req.Rates
	if rates == nil {
		rates = domain.NewRateTable(nil)
	}

	pc := &pricingContext{
		rates:  rates,
		def:    def,
		target: target,
		modify: target.ID != def.ID && target.HasModifier(),
		rate:   rate,
		logger: e.logger,
		mode:   mode,
	}

	var (
		items  []LineItem
		nights int
	)

	switch alloc := req.Allocation.(type) {
	case StaticAllocation:
		if len(alloc.Units) == 0 {
			return nil, ErrEmptyAllocation
		}
		items, nights, err = priceStatic(pc, alloc, req.Range)
	case SegmentedAllocation:
		if len(alloc.Segments) == 0 {
			return nil, ErrEmptyAllocation
		}
		items, nights, err = priceSegmented(pc, alloc)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAllocation, req.Allocation)
	}
	if err != nil {
		return nil, err
	}

	var total, totalOperating float64
	for _, it := range items {
		total += it.Total
		totalOperating += it.TotalInOperatingCurrency
	}

	if len(pc.gaps) > 0 && e.metrics != nil {
		e.metrics.PricingRateGaps.WithLabelValues(string(mode)).Add(float64(len(pc.gaps)))
	}

	usedRate := 0.0
	if money.NeedsRate(def.Currency, target.Currency) || money.NeedsRate(def.Currency, OperatingCurrency) {
		usedRate = rate
	}

	return &Result{
		Mode:                     mode,
		Channel:                  target,
		DefaultChannel:           def,
		Currency:                 target.Currency,
		Total:                    money.Round(total, target.Currency),
		TotalInOperatingCurrency: money.Round(totalOperating, OperatingCurrency),
		Nights:                   nights,
		ExchangeRate:             usedRate,
		Breakdown:                items,
		RateGaps:                 pc.gaps,
	}, nil
}

// resolveRate возвращает курс, если хотя бы одна конвертация требуется
func (e *Engine) resolveRate(ctx context.Context, req Request, def, target domain.Channel) (float64, error) {
	if !money.NeedsRate(def.Currency, target.Currency) && !money.NeedsRate(def.Currency, OperatingCurrency) {
		return 0, nil
	}

	if req.ExchangeRateOverride != nil {
		if *req.ExchangeRateOverride <= 0 {
			return 0, fmt.Errorf("%w: override %v is not positive", domain.ErrExchangeRateUnavailable, *req.ExchangeRateOverride)
		}
		return *req.ExchangeRateOverride, nil
	}

	if e.rates == nil {
		return 0, fmt.Errorf("%w: no provider configured", domain.ErrExchangeRateUnavailable)
	}

	rate, err := e.rates.RateFor(ctx, req.TenantID, req.Range.Start)
	if err != nil {
		e.logger.Error("Price: exchange rate for tenant=%s, date=%s unavailable: %v", req.TenantID, req.Range.Start, err)
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrExchangeRateUnavailable, req.Range.Start, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: %s: rate %v is not positive", domain.ErrExchangeRateUnavailable, req.Range.Start, rate)
	}

	return rate, nil
}

// basePrice цена дня юнита по каналу по умолчанию; без тарифа - 0 и запись в gaps
func (pc *pricingContext) basePrice(unitID string, day types.Date) float64 {
	entry, ok := pc.rates.Lookup(unitID, day)
	if ok {
		if price, ok := entry.PriceFor(pc.def.ID); ok {
			return price
		}
	}
	pc.logger.Warn("Price: no %s rate for unit=%s on %s (%s), counted as 0", pc.def.ID, unitID, day, pc.mode)
	pc.gaps = append(pc.gaps, RateGap{UnitID: unitID, Day: day})
	return 0
}

// convert переводит сумму из валюты канала по умолчанию в целевую и операционную валюты
func (pc *pricingContext) convert(amount float64) (float64, float64, error) {
	inTarget, err := money.Convert(amount, pc.def.Currency, pc.target.Currency, pc.rate)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	inOperating, err := money.Convert(amount, pc.def.Currency, OperatingCurrency, pc.rate)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return inTarget, inOperating, nil
}

// priceStatic: сумма по дням на юнит, модификатор на сумму юнита, затем конвертация
func priceStatic(pc *pricingContext, alloc StaticAllocation, rng domain.DateRange) ([]LineItem, int, error) {
	days := rng.Days()
	nights := len(days)
	items := make([]LineItem, 0, len(alloc.Units))

	for _, u := range alloc.Units {
		base := 0.0
		for _, day := range days {
			base += pc.basePrice(u.ID, day)
		}

		if pc.modify {
			switch pc.target.ModifierType {
			case domain.ModifierPercentage:
				base *= 1 + pc.target.ModifierValue/100
			case domain.ModifierFixed:
				base += pc.target.ModifierValue * float64(nights)
			}
		}

		inTarget, inOperating, err := pc.convert(base)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, LineItem{
			UnitID:                   u.ID,
			Span:                     rng,
			Nights:                   nights,
			BaseTotal:                base,
			Total:                    inTarget,
			TotalInOperatingCurrency: inOperating,
		})
	}

	return items, nights, nil
}

// priceSegmented: цепочка тариф -> модификатор -> конвертация на каждый календарный день,
// итоги группируются по сегментам; ночи считаются по различным дням
func priceSegmented(pc *pricingContext, alloc SegmentedAllocation) ([]LineItem, int, error) {
	items := make([]LineItem, 0, len(alloc.Segments))
	seen := make(map[string]struct{})

	for _, seg := range alloc.Segments {
		item := LineItem{
			UnitID: seg.Unit.ID,
			Span:   seg.Span,
		}

		for _, day := range seg.Span.Days() {
			price := pc.basePrice(seg.Unit.ID, day)

			if pc.modify {
				switch pc.target.ModifierType {
				case domain.ModifierPercentage:
					price *= 1 + pc.target.ModifierValue/100
				case domain.ModifierFixed:
					price += pc.target.ModifierValue
				}
			}

			inTarget, inOperating, err := pc.convert(price)
			if err != nil {
				return nil, 0, err
			}

			item.Nights++
			item.BaseTotal += price
			item.Total += inTarget
			item.TotalInOperatingCurrency += inOperating
			seen[day.String()] = struct{}{}
		}

		items = append(items, item)
	}

	return items, len(seen), nil
}
