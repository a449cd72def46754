package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_HalfUp(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency Currency
		want     float64
	}{
		{"clp half rounds up", 269999.5, CLP, 270000},
		{"clp below half", 1234.49, CLP, 1234},
		{"usd half cent", 2.675, USD, 2.68},
		{"usd exact", 130.9, USD, 130.9},
		{"negative rounds away from zero", -1.005, USD, -1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.amount, tt.currency))
		})
	}
}

func TestConvert(t *testing.T) {
	clp, err := Convert(300, USD, CLP, 900)
	require.NoError(t, err)
	assert.Equal(t, 270000.0, clp)

	usd, err := Convert(270000, CLP, USD, 900)
	require.NoError(t, err)
	assert.Equal(t, 300.0, usd)

	same, err := Convert(42, CLP, CLP, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, same)
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert(10, USD, CLP, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = Convert(10, Currency("EUR"), CLP, 900)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}
