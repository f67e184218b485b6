package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, "2025-03-10", d.String())

	_, err = ParseDate("10/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2025-02-28")
	b := MustParseDate("2025-03-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, 0, a.Compare(MustParseDate("2025-02-28")))
	assert.Equal(t, a, MustParseDate("2025-02-28"))
}

func TestDate_AddDaysAndDaysUntil(t *testing.T) {
	d := MustParseDate("2024-12-31")
	assert.Equal(t, MustParseDate("2025-01-01"), d.AddDays(1))
	assert.Equal(t, MustParseDate("2024-02-29"), MustParseDate("2024-03-01").AddDays(-1))

	assert.Equal(t, 3, MustParseDate("2025-03-10").DaysUntil(MustParseDate("2025-03-13")))
	assert.Equal(t, -1, MustParseDate("2025-03-10").DaysUntil(MustParseDate("2025-03-09")))
}

func TestDateIn_IgnoresHostTimeZone(t *testing.T) {
	amman := time.FixedZone("Asia/Amman", 3*60*60)
	// 22:30 UTC on March 14 is already March 15 in Amman
	instant := time.Date(2025, time.March, 14, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, MustParseDate("2025-03-15"), DateIn(instant, amman))
	assert.Equal(t, MustParseDate("2025-03-14"), DateIn(instant, time.UTC))
}

func TestDate_Weekday(t *testing.T) {
	assert.Equal(t, time.Saturday, MustParseDate("2025-03-01").Weekday())
	assert.Equal(t, time.Wednesday, MustParseDate("2025-01-01").Weekday())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	b, err := json.Marshal(payload{Date: MustParseDate("2025-03-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-10"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-12-01"}`), &p))
	assert.Equal(t, MustParseDate("2025-12-01"), p.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"tomorrow"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2025-03-10"), d)

	require.NoError(t, d.Scan([]byte("2025-04-01")))
	assert.Equal(t, MustParseDate("2025-04-01"), d)

	require.NoError(t, d.Scan("2025-05-02T00:00:00Z"))
	assert.Equal(t, MustParseDate("2025-05-02"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := MustParseDate("2025-03-10").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
