package search_combination

import (
	"context"

	searchCombination "github.com/m04kA/SMC-RentalService/internal/usecase/search_combination"
)

type SearchCombinationUseCase interface {
	Execute(ctx context.Context, req *searchCombination.Request) (*searchCombination.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
