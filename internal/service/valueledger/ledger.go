package valueledger

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/money"
)

// zeroTolerance сумма, ниже которой итог группы считается нулевым
const zeroTolerance = 1e-9

// PartialValues поля, которые меняет пересчет от нового итога.
// Commission и ChannelCost пересчетом не затрагиваются.
type PartialValues struct {
	GuestTotal float64
	Payout     float64
	Tax        float64
}

// DeriveFromReport строит набор значений из строки отчета канала.
// subtotal = payout + commission; в режиме add налог добавляется сверху,
// в режиме included итог равен subtotal, а налог вычисляется справочно.
func DeriveFromReport(payout, commission, channelCost float64, mode domain.TaxMode) (domain.ValueSet, error) {
	if err := checkAmounts(payout, commission, channelCost); err != nil {
		return domain.ValueSet{}, err
	}

	subtotal := payout + commission

	var guestTotal, tax float64
	switch mode {
	case domain.TaxModeAdd:
		tax = subtotal * domain.TaxRate
		guestTotal = subtotal + tax
	case domain.TaxModeIncluded:
		guestTotal = subtotal
		tax = guestTotal / (1 + domain.TaxRate) * domain.TaxRate
	default:
		return domain.ValueSet{}, fmt.Errorf("%w: %q", ErrInvalidTaxMode, mode)
	}

	return domain.ValueSet{
		GuestTotal:  guestTotal,
		Payout:      payout,
		Commission:  commission,
		ChannelCost: channelCost,
		Tax:         tax,
	}, nil
}

// RecalcFromTotal обратная операция к DeriveFromReport: раскладывает новый итог гостя
// на payout и налог при неизменной комиссии
func RecalcFromTotal(newGuestTotal float64, mode domain.TaxMode, commission float64) (PartialValues, error) {
	if err := checkAmounts(newGuestTotal, commission); err != nil {
		return PartialValues{}, err
	}

	var subtotal, tax float64
	switch mode {
	case domain.TaxModeAdd:
		subtotal = newGuestTotal / (1 + domain.TaxRate)
		tax = newGuestTotal - subtotal
	case domain.TaxModeIncluded:
		subtotal = newGuestTotal
		tax = subtotal / (1 + domain.TaxRate) * domain.TaxRate
	default:
		return PartialValues{}, fmt.Errorf("%w: %q", ErrInvalidTaxMode, mode)
	}

	return PartialValues{
		GuestTotal: newGuestTotal,
		Payout:     subtotal - commission,
		Tax:        tax,
	}, nil
}

// NewReservationValues значения нового бронирования: actual и anchor совпадают
func NewReservationValues(values domain.ValueSet, currency money.Currency) (domain.ActualValues, domain.AnchorValues) {
	rounded := roundSet(values, currency)
	return domain.ActualValues(rounded), domain.AnchorValues(rounded)
}

// Outcome сводка перераспределения группы
type Outcome struct {
	Currency money.Currency
	// NewTotal новый итог группы в валюте оценки
	NewTotal float64
	// PreviousTotal сумма actual.GuestTotal до изменения
	PreviousTotal float64
	// AnchorTotal сумма anchor.GuestTotal
	AnchorTotal float64
	// Adjustment отклонение нового итога от якоря; в расчете долей не участвует
	Adjustment float64
	// Proportions доли бронирований в исходном порядке
	Proportions []float64
	// EqualSplit true, если текущий итог был нулевым и группа делилась поровну
	EqualSplit bool
}

// Redistribute распределяет новый итог группы (в валюте оценки) по бронированиям
// пропорционально текущим actual.GuestTotal; при нулевом текущем итоге - поровну.
// Пересчет выполняется один раз на итог группы с суммарной комиссией, затем каждое поле
// масштабируется долей бронирования. Anchor не изменяется. Вход не модифицируется.
func Redistribute(group []domain.Reservation, newTotal float64) ([]domain.Reservation, Outcome, error) {
	if len(group) == 0 {
		return nil, Outcome{}, fmt.Errorf("%w: group has no reservations", domain.ErrRedistributionInput)
	}
	if math.IsNaN(newTotal) || math.IsInf(newTotal, 0) || newTotal < 0 {
		return nil, Outcome{}, fmt.Errorf("%w: new total %v", ErrInvalidAmount, newTotal)
	}

	currency := group[0].Currency
	mode := group[0].TaxMode
	for _, r := range group[1:] {
		if r.Currency != currency {
			return nil, Outcome{}, fmt.Errorf("%w: reservation %s is valued in %s, group in %s",
				domain.ErrRedistributionInput, r.ID, r.Currency, currency)
		}
		if r.TaxMode != mode {
			return nil, Outcome{}, fmt.Errorf("%w: reservation %s has tax mode %s, group has %s",
				domain.ErrRedistributionInput, r.ID, r.TaxMode, mode)
		}
	}

	var actualSum, anchorSum, commission float64
	for _, r := range group {
		actualSum += r.Actual.GuestTotal
		anchorSum += r.Anchor.GuestTotal
		commission += r.Actual.Commission
	}

	proportions := Proportions(group)

	partial, err := RecalcFromTotal(newTotal, mode, commission)
	if err != nil {
		return nil, Outcome{}, err
	}

	updated := make([]domain.Reservation, len(group))
	for i, r := range group {
		p := proportions[i]
		r.Actual.GuestTotal = money.Round(partial.GuestTotal*p, currency)
		r.Actual.Payout = money.Round(partial.Payout*p, currency)
		r.Actual.Tax = money.Round(partial.Tax*p, currency)
		r.Edited |= domain.EditedGuestTotal | domain.EditedPayout | domain.EditedTax
		updated[i] = r
	}

	return updated, Outcome{
		Currency:      currency,
		NewTotal:      newTotal,
		PreviousTotal: actualSum,
		AnchorTotal:   anchorSum,
		Adjustment:    newTotal - anchorSum,
		Proportions:   proportions,
		EqualSplit:    math.Abs(actualSum) < zeroTolerance,
	}, nil
}

// Proportions доли бронирований в текущем итоге группы; при нулевом итоге 1/n каждому
func Proportions(group []domain.Reservation) []float64 {
	out := make([]float64, len(group))
	if len(group) == 0 {
		return out
	}

	sum := 0.0
	for _, r := range group {
		sum += r.Actual.GuestTotal
	}

	for i, r := range group {
		if math.Abs(sum) < zeroTolerance {
			out[i] = 1 / float64(len(group))
			continue
		}
		out[i] = r.Actual.GuestTotal / sum
	}
	return out
}

// Drift отклонение текущего итога группы от якоря
func Drift(group []domain.Reservation) float64 {
	var actual, anchor float64
	for _, r := range group {
		actual += r.Actual.GuestTotal
		anchor += r.Anchor.GuestTotal
	}
	return actual - anchor
}

func roundSet(v domain.ValueSet, currency money.Currency) domain.ValueSet {
	return domain.ValueSet{
		GuestTotal:  money.Round(v.GuestTotal, currency),
		Payout:      money.Round(v.Payout, currency),
		Commission:  money.Round(v.Commission, currency),
		ChannelCost: money.Round(v.ChannelCost, currency),
		Tax:         money.Round(v.Tax, currency),
	}
}

func checkAmounts(amounts ...float64) error {
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, a)
		}
	}
	return nil
}
