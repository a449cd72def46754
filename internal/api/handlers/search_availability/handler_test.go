package search_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	searchAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *searchAvailability.Request) (*searchAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*searchAvailability.Response), args.Error(1)
}

func newRequest(query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil)
	return r.WithContext(middleware.WithTenantID(r.Context(), "t1"))
}

func TestHandler_IncludeTentative(t *testing.T) {
	resp := &searchAvailability.Response{
		Range:  domain.DateRange{Start: types.MustParseDate("2025-07-01"), End: types.MustParseDate("2025-07-04")},
		Nights: 3,
	}

	cases := []struct {
		name     string
		query    string
		expected bool
	}{
		{name: "default", query: "start=2025-07-01&end=2025-07-04", expected: true},
		{name: "explicit false", query: "start=2025-07-01&end=2025-07-04&includeTentative=false", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *searchAvailability.Request) bool {
				return req.IncludeTentative == tc.expected
			})).Return(resp, nil)

			w := httptest.NewRecorder()
			NewHandler(uc, true, logger.NewNop()).Handle(w, newRequest(tc.query))

			assert.Equal(t, http.StatusOK, w.Code)
			uc.AssertExpectations(t)
		})
	}
}
