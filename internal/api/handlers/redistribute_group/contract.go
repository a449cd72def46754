package redistribute_group

import (
	"context"

	redistributeGroup "github.com/m04kA/SMC-RentalService/internal/usecase/redistribute_group"
)

type RedistributeGroupUseCase interface {
	Execute(ctx context.Context, req *redistributeGroup.Request) (*redistributeGroup.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
