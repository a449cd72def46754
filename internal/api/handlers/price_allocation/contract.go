package price_allocation

import (
	"context"

	priceAllocation "github.com/m04kA/SMC-RentalService/internal/usecase/price_allocation"
)

type PriceAllocationUseCase interface {
	Execute(ctx context.Context, req *priceAllocation.Request) (*priceAllocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
