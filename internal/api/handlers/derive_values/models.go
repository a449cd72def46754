package derive_values

// DeriveRequest строка отчета канала
type DeriveRequest struct {
	Payout      float64 `json:"payout"`
	Commission  float64 `json:"commission"`
	ChannelCost float64 `json:"channelCost"`
	TaxMode     string  `json:"taxMode"`
	Currency    string  `json:"currency,omitempty"` // при указании значения округляются
}
