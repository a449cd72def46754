package domain

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/money"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ManagementStatus represents the management state of a reservation
type ManagementStatus string

const (
	StatusProposed       ManagementStatus = "proposed"
	StatusConfirmed      ManagementStatus = "confirmed"
	StatusPendingWelcome ManagementStatus = "pending_welcome"
	StatusPendingPayment ManagementStatus = "pending_payment"
	StatusPendingReceipt ManagementStatus = "pending_receipt"
	StatusInvoiced       ManagementStatus = "invoiced"
	StatusRejected       ManagementStatus = "rejected"
	StatusCancelled      ManagementStatus = "cancelled"
)

// statusTransitions allowed next states
var statusTransitions = map[ManagementStatus][]ManagementStatus{
	StatusProposed:       {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:      {StatusPendingWelcome, StatusRejected, StatusCancelled},
	StatusPendingWelcome: {StatusPendingPayment},
	StatusPendingPayment: {StatusPendingReceipt},
	StatusPendingReceipt: {StatusInvoiced},
}

// IsValid returns true for known statuses
func (s ManagementStatus) IsValid() bool {
	switch s {
	case StatusProposed, StatusConfirmed, StatusPendingWelcome, StatusPendingPayment,
		StatusPendingReceipt, StatusInvoiced, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo returns true if the state machine allows s -> next
func (s ManagementStatus) CanTransitionTo(next ManagementStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TaxMode how tax relates to the guest total
type TaxMode string

const (
	// TaxModeAdd tax is added on top of payout + commission
	TaxModeAdd TaxMode = "add"
	// TaxModeIncluded guest total already contains tax
	TaxModeIncluded TaxMode = "included"
)

// IsValid returns true for known tax modes
func (m TaxMode) IsValid() bool {
	return m == TaxModeAdd || m == TaxModeIncluded
}

// ValueSet monetary fields of a reservation in its valuation currency (USD)
type ValueSet struct {
	GuestTotal  float64
	Payout      float64
	Commission  float64
	ChannelCost float64
	Tax         float64
}

// ActualValues currently effective values, mutable by manual edits
type ActualValues ValueSet

// AnchorValues values as originally derived at creation; never edited afterwards
type AnchorValues ValueSet

// EditedFields set of actual fields that were edited manually
type EditedFields uint8

const (
	EditedGuestTotal EditedFields = 1 << iota
	EditedPayout
	EditedCommission
	EditedChannelCost
	EditedTax
)

// Has returns true if every flag in f is set
func (e EditedFields) Has(f EditedFields) bool {
	return e&f == f
}

// Reservation one unit stay inside a reservation group
type Reservation struct {
	ID        string
	TenantID  string
	GroupID   string // shared external booking identifier; groups are derived from it
	UnitID    string
	ChannelID string
	Stay      DateRange
	Status    ManagementStatus
	TaxMode   TaxMode
	Currency  money.Currency // currency of Actual/Anchor

	Actual ActualValues
	Anchor AnchorValues
	Edited EditedFields

	// InvoicedExchangeRate CLP per USD frozen when the reservation was invoiced
	InvoicedExchangeRate *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckIn returns the first night of the stay
func (r *Reservation) CheckIn() types.Date {
	return r.Stay.Start
}

// HasFrozenRate returns true if an invoicing rate was stored
func (r *Reservation) HasFrozenRate() bool {
	return r.InvoicedExchangeRate != nil && *r.InvoicedExchangeRate > 0
}
