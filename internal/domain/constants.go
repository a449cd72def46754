package domain

// TaxRate VAT applied to guest totals
const TaxRate = 0.19

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxStayNights  = 365
	MaxRequiredPax = 200
)

// BlockingStatuses статусы, занимающие юнит во всех сценариях
var BlockingStatuses = []ManagementStatus{
	StatusConfirmed,
	StatusPendingWelcome,
	StatusPendingPayment,
	StatusPendingReceipt,
	StatusInvoiced,
}

// TentativeStatuses статусы, занимающие юнит только при публичном поиске
var TentativeStatuses = []ManagementStatus{
	StatusProposed,
}

// OccupancyStatuses возвращает статусы, которые считаются занятостью
func OccupancyStatuses(includeTentative bool) []ManagementStatus {
	statuses := make([]ManagementStatus, 0, len(BlockingStatuses)+len(TentativeStatuses))
	statuses = append(statuses, BlockingStatuses...)
	if includeTentative {
		statuses = append(statuses, TentativeStatuses...)
	}
	return statuses
}
