package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ValuesResponse денежные поля бронирования
type ValuesResponse struct {
	GuestTotal  float64 `json:"guestTotal"`
	Payout      float64 `json:"payout"`
	Commission  float64 `json:"commission"`
	ChannelCost float64 `json:"channelCost"`
	Tax         float64 `json:"tax"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                   string         `json:"id"`
	GroupID              string         `json:"groupId"`
	UnitID               string         `json:"unitId"`
	ChannelID            string         `json:"channelId"`
	CheckIn              string         `json:"checkIn"`  // "2025-10-15"
	CheckOut             string         `json:"checkOut"` // день выезда, не входит в период
	Nights               int            `json:"nights"`
	Status               string         `json:"status"`
	TaxMode              string         `json:"taxMode"`
	Currency             string         `json:"currency"`
	Actual               ValuesResponse `json:"actual"`
	Anchor               ValuesResponse `json:"anchor"`
	EditedFields         []string       `json:"editedFields"`
	InvoicedExchangeRate *float64       `json:"invoicedExchangeRate,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// ValuationResponse стоимость бронирования в операционной валюте
type ValuationResponse struct {
	ReservationID    string         `json:"reservationId"`
	Currency         string         `json:"currency"`
	Values           ValuesResponse `json:"values"`
	ExchangeRateUsed float64        `json:"exchangeRateUsed,omitempty"`
	WasFixed         bool           `json:"wasFixed"`
}

// GroupMember бронирование группы вместе с оценкой
type GroupMember struct {
	Reservation ReservationResponse `json:"reservation"`
	Valuation   ValuationResponse   `json:"valuation"`
}

// GroupResponse группа бронирований
type GroupResponse struct {
	GroupID           string        `json:"groupId"`
	Currency          string        `json:"currency"`
	Members           []GroupMember `json:"members"`
	ActualTotal       float64       `json:"actualTotal"`
	AnchorTotal       float64       `json:"anchorTotal"`
	Drift             float64       `json:"drift"`
	OperatingTotal    float64       `json:"operatingTotal"`
	OperatingCurrency string        `json:"operatingCurrency"`
}

// Методы конвертации

// FromValueSet конвертирует набор значений в DTO
func FromValueSet(v domain.ValueSet) ValuesResponse {
	return ValuesResponse{
		GuestTotal:  v.GuestTotal,
		Payout:      v.Payout,
		Commission:  v.Commission,
		ChannelCost: v.ChannelCost,
		Tax:         v.Tax,
	}
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                   r.ID,
		GroupID:              r.GroupID,
		UnitID:               r.UnitID,
		ChannelID:            r.ChannelID,
		CheckIn:              r.Stay.Start.String(),
		CheckOut:             r.Stay.End.String(),
		Nights:               r.Stay.Nights(),
		Status:               string(r.Status),
		TaxMode:              string(r.TaxMode),
		Currency:             string(r.Currency),
		Actual:               FromValueSet(domain.ValueSet(r.Actual)),
		Anchor:               FromValueSet(domain.ValueSet(r.Anchor)),
		EditedFields:         EditedFieldNames(r.Edited),
		InvoicedExchangeRate: r.InvoicedExchangeRate,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// FromValuation конвертирует оценку в DTO
func FromValuation(v *valueledger.Valuation) ValuationResponse {
	return ValuationResponse{
		ReservationID: v.ReservationID,
		Currency:      string(v.Currency),
		Values: ValuesResponse{
			GuestTotal:  v.GuestTotal,
			Payout:      v.Payout,
			Commission:  v.Commission,
			ChannelCost: v.ChannelCost,
			Tax:         v.Tax,
		},
		ExchangeRateUsed: v.ExchangeRateUsed,
		WasFixed:         v.WasFixed,
	}
}

// EditedFieldNames имена полей, отредактированных вручную
func EditedFieldNames(e domain.EditedFields) []string {
	names := make([]string, 0, 5)
	for _, f := range []struct {
		flag domain.EditedFields
		name string
	}{
		{domain.EditedGuestTotal, "guestTotal"},
		{domain.EditedPayout, "payout"},
		{domain.EditedCommission, "commission"},
		{domain.EditedChannelCost, "channelCost"},
		{domain.EditedTax, "tax"},
	} {
		if e.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}
