package fxapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

func TestClient_GetRate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/dolar/15-01-2025":
			_, _ = w.Write([]byte(`{"codigo":"dolar","unidad_medida":"Pesos","serie":[{"fecha":"2025-01-15T03:00:00.000Z","valor":1003.62}]}`))
		case "/dolar/18-01-2025":
			_, _ = w.Write([]byte(`{"codigo":"dolar","unidad_medida":"Pesos","serie":[]}`))
		case "/dolar/19-01-2025":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`boom`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, logger.NewNop())
	ctx := context.Background()

	rate, err := client.GetRate(ctx, types.MustParseDate("2025-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 1003.62, rate)
	assert.Equal(t, "/dolar/15-01-2025", gotPath)

	_, err = client.GetRate(ctx, types.MustParseDate("2025-01-18"))
	assert.ErrorIs(t, err, ErrRateNotFound)

	_, err = client.GetRate(ctx, types.MustParseDate("2025-01-19"))
	assert.ErrorIs(t, err, ErrRateNotFound)

	_, err = client.GetRate(ctx, types.MustParseDate("2025-01-20"))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
