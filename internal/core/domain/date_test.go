package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOf_DropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	instant := time.Date(2024, time.March, 15, 23, 45, 0, 0, loc)

	d := DateOf(instant)

	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d.Time())
}

func TestAddDays(t *testing.T) {
	d := NewDate(2024, time.January, 31)

	assert.Equal(t, "2024-02-15", d.AddDays(15).String())
	assert.Equal(t, "2024-01-16", d.AddDays(-15).String())
	assert.True(t, d.AddDays(0).Equal(d))
}

func TestDaysUntil(t *testing.T) {
	d := NewDate(2024, time.March, 1)

	assert.Equal(t, 14, d.DaysUntil(NewDate(2024, time.March, 15)))
	assert.Equal(t, -1, d.DaysUntil(NewDate(2024, time.February, 29)))
	assert.Equal(t, 0, d.DaysUntil(d))
}

func TestDateJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := NewDate(2024, time.March, 15)

		raw, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-15"`, string(raw))

		var decoded Date
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.True(t, decoded.Equal(d))
	})

	t.Run("zero date encodes as empty string", func(t *testing.T) {
		raw, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, `""`, string(raw))
	})

	t.Run("empty string and null decode to zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())

		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("malformed input is rejected", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"2024-13-99"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`42`), &d))
	})
}
