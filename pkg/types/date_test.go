package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_TruncatesToCalendarDay(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	d := DateOf(time.Date(2025, 1, 10, 23, 30, 0, 0, santiago))

	assert.Equal(t, "2025-01-10", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())
	assert.Equal(t, 0, d.Time().Hour())
}

func TestDate_AddDaysAndCompare(t *testing.T) {
	d := MustParseDate("2025-02-27")
	next := d.AddDays(2)

	assert.Equal(t, "2025-03-01", next.String())
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.Equal(t, 2, d.DaysUntil(next))
	assert.Equal(t, -2, next.DaysUntil(d))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	err := json.Unmarshal([]byte(`{"start":"2025-03-01","end":"2025-03-05T15:00:00Z"}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", payload.Start.String())
	assert.Equal(t, "2025-03-05", payload.End.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-03-01","end":"2025-03-05"}`, string(out))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-04-02", d.String())

	require.NoError(t, d.Scan([]byte("2025-04-03")))
	assert.Equal(t, "2025-04-03", d.String())

	require.NoError(t, d.Scan("2025-04-04T00:00:00Z"))
	assert.Equal(t, "2025-04-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.ErrorIs(t, d.Scan(42), ErrUnsupportedDateSource)
}
