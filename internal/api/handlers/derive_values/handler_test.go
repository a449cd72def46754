package derive_values

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

func derive(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/values/derive", strings.NewReader(body))
	w := httptest.NewRecorder()
	NewHandler(valueledger.NewCalculator(), logger.NewNop()).Handle(w, r)
	return w
}

func TestHandler_DeriveAddMode(t *testing.T) {
	w := derive(t, `{"payout":100,"commission":10,"channelCost":3,"taxMode":"add","currency":"USD"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.ValuesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 130.9, body.GuestTotal)
	assert.Equal(t, 20.9, body.Tax)
	assert.Equal(t, 100.0, body.Payout)
	assert.Equal(t, 3.0, body.ChannelCost)
}

func TestHandler_DeriveIncludedModeCLP(t *testing.T) {
	w := derive(t, `{"payout":100000,"commission":19000,"taxMode":"included","currency":"CLP"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.ValuesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 119000.0, body.GuestTotal)
	assert.Equal(t, 19000.0, body.Tax)
}

func TestHandler_DeriveRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown tax mode":     `{"payout":100,"commission":10,"taxMode":"exempt"}`,
		"unsupported currency": `{"payout":100,"commission":10,"taxMode":"add","currency":"EUR"}`,
		"unknown field":        `{"payout":100,"fee":10,"taxMode":"add"}`,
		"empty body":           ``,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, derive(t, body).Code)
		})
	}
}
