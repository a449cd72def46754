package valueledger

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// OperatingCurrency валюта отображения стоимости бронирований
const OperatingCurrency = money.CLP

// Valuation actual-значения бронирования в операционной валюте
type Valuation struct {
	ReservationID    string
	Currency         money.Currency
	GuestTotal       float64
	Payout           float64
	Commission       float64
	ChannelCost      float64
	Tax              float64
	ExchangeRateUsed float64
	WasFixed         bool
}

// Valuer пересчитывает бронирования в операционную валюту по правилу фиксированного/плавающего курса
type Valuer struct {
	rates        ExchangeRateProvider
	timeProvider TimeProvider
}

// NewValuer создает новый экземпляр оценщика
func NewValuer(rates ExchangeRateProvider) *Valuer {
	return &Valuer{
		rates:        rates,
		timeProvider: &RealTimeProvider{},
	}
}

// Today текущая календарная дата
func (v *Valuer) Today() types.Date {
	return types.DateOf(v.timeProvider.Now())
}

// IsFixed курс заморожен для выставленных в счет бронирований и для заездов в прошлом
func IsFixed(r *domain.Reservation, today types.Date) bool {
	return r.Status == domain.StatusInvoiced || r.CheckIn().Before(today)
}

// RateBasis возвращает курс для оценки бронирования и признак фиксированного курса.
// Фиксированный курс - сохраненный при выставлении счета, иначе исторический на дату заезда.
// Плавающий курс - курс на сегодня.
func (v *Valuer) RateBasis(ctx context.Context, r *domain.Reservation) (float64, bool, error) {
	fixed := IsFixed(r, v.Today())

	var (
		rate float64
		err  error
	)
	switch {
	case fixed && r.HasFrozenRate():
		rate = *r.InvoicedExchangeRate
	case fixed:
		rate, err = v.rates.RateFor(ctx, r.TenantID, r.CheckIn())
	default:
		rate, err = v.rates.TodayRate(ctx, r.TenantID)
	}

	if err != nil {
		return 0, fixed, fmt.Errorf("%w: reservation %s: %v", domain.ErrExchangeRateUnavailable, r.ID, err)
	}
	if rate <= 0 {
		return 0, fixed, fmt.Errorf("%w: reservation %s: rate %v is not positive", domain.ErrExchangeRateUnavailable, r.ID, rate)
	}

	return rate, fixed, nil
}

// Value переводит actual-значения в операционную валюту. Anchor не читается и не изменяется.
func (v *Valuer) Value(ctx context.Context, r *domain.Reservation) (*Valuation, error) {
	if r.Currency == OperatingCurrency {
		return &Valuation{
			ReservationID: r.ID,
			Currency:      OperatingCurrency,
			GuestTotal:    money.Round(r.Actual.GuestTotal, OperatingCurrency),
			Payout:        money.Round(r.Actual.Payout, OperatingCurrency),
			Commission:    money.Round(r.Actual.Commission, OperatingCurrency),
			ChannelCost:   money.Round(r.Actual.ChannelCost, OperatingCurrency),
			Tax:           money.Round(r.Actual.Tax, OperatingCurrency),
			WasFixed:      IsFixed(r, v.Today()),
		}, nil
	}

	rate, fixed, err := v.RateBasis(ctx, r)
	if err != nil {
		return nil, err
	}

	conv := func(amount float64) (float64, error) {
		out, err := money.Convert(amount, r.Currency, OperatingCurrency, rate)
		if err != nil {
			return 0, fmt.Errorf("%w: reservation %s: %v", domain.ErrConfiguration, r.ID, err)
		}
		return money.Round(out, OperatingCurrency), nil
	}

	val := &Valuation{
		ReservationID:    r.ID,
		Currency:         OperatingCurrency,
		ExchangeRateUsed: rate,
		WasFixed:         fixed,
	}

	fields := []struct {
		src float64
		dst *float64
	}{
		{r.Actual.GuestTotal, &val.GuestTotal},
		{r.Actual.Payout, &val.Payout},
		{r.Actual.Commission, &val.Commission},
		{r.Actual.ChannelCost, &val.ChannelCost},
		{r.Actual.Tax, &val.Tax},
	}
	for _, f := range fields {
		if *f.dst, err = conv(f.src); err != nil {
			return nil, err
		}
	}

	return val, nil
}

// GroupRateBasis возвращает единый курс оценки группы.
// Если в группе есть выставленные в счет бронирования с сохраненным курсом, базой служит этот курс,
// и все такие курсы должны совпадать. Иначе курс определяется по бронированию с самым ранним заездом:
// исторический на дату заезда, если заезд уже прошел, или курс на сегодня.
func (v *Valuer) GroupRateBasis(ctx context.Context, group []domain.Reservation) (float64, error) {
	if len(group) == 0 {
		return 0, fmt.Errorf("%w: group has no reservations", domain.ErrRedistributionInput)
	}

	currency := group[0].Currency
	earliest := &group[0]
	var frozen *domain.Reservation

	for i := range group {
		r := &group[i]
		if r.Currency != currency {
			return 0, fmt.Errorf("%w: reservation %s is valued in %s, group in %s",
				domain.ErrRedistributionInput, r.ID, r.Currency, currency)
		}
		if r.CheckIn().Before(earliest.CheckIn()) {
			earliest = r
		}
		if r.Status != domain.StatusInvoiced || !r.HasFrozenRate() {
			continue
		}
		if frozen == nil {
			frozen = r
			continue
		}
		if *r.InvoicedExchangeRate != *frozen.InvoicedExchangeRate {
			return 0, fmt.Errorf("%w: reservation %s was invoiced at %v, reservation %s at %v",
				domain.ErrRedistributionInput, r.ID, *r.InvoicedExchangeRate, frozen.ID, *frozen.InvoicedExchangeRate)
		}
	}

	basis := earliest
	if frozen != nil {
		basis = frozen
	}

	rate, _, err := v.RateBasis(ctx, basis)
	return rate, err
}

// ToValuationCurrency переводит итог, введенный в операционной валюте, в валюту оценки группы
// по курсу GroupRateBasis.
func (v *Valuer) ToValuationCurrency(ctx context.Context, group []domain.Reservation, total float64) (float64, float64, error) {
	if len(group) == 0 {
		return 0, 0, fmt.Errorf("%w: group has no reservations", domain.ErrRedistributionInput)
	}

	currency := group[0].Currency
	if currency == OperatingCurrency {
		return total, 0, nil
	}

	groupRate, err := v.GroupRateBasis(ctx, group)
	if err != nil {
		return 0, 0, err
	}

	converted, err := money.Convert(total, OperatingCurrency, currency, groupRate)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	return money.Round(converted, currency), groupRate, nil
}
