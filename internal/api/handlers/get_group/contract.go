package get_group

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

type ReservationService interface {
	GetGroup(ctx context.Context, tenantID, groupID string) (*models.GroupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
