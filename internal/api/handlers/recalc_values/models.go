package recalc_values

import "github.com/m04kA/SMC-RentalService/internal/service/valueledger"

// RecalcRequest новый итог гостя при неизменной комиссии
type RecalcRequest struct {
	Total      float64 `json:"total"`
	Commission float64 `json:"commission"`
	TaxMode    string  `json:"taxMode"`
	Currency   string  `json:"currency,omitempty"`
}

// RecalcResponse пересчитанные поля; комиссия и стоимость канала не меняются
type RecalcResponse struct {
	GuestTotal float64 `json:"guestTotal"`
	Payout     float64 `json:"payout"`
	Tax        float64 `json:"tax"`
}

func FromPartialValues(p valueledger.PartialValues) *RecalcResponse {
	return &RecalcResponse{
		GuestTotal: p.GuestTotal,
		Payout:     p.Payout,
		Tax:        p.Tax,
	}
}
