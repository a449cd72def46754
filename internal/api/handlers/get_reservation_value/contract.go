package get_reservation_value

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

type ReservationService interface {
	ValueInOperatingCurrency(ctx context.Context, tenantID, id string) (*models.ValuationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
