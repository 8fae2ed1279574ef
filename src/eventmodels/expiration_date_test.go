package eventmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirationDate(t *testing.T) {
	t.Run("epoch seconds and date string normalize identically", func(t *testing.T) {
		var fromEpoch, fromString ExpirationDate

		require.NoError(t, json.Unmarshal([]byte(`1718928000`), &fromEpoch))
		require.NoError(t, json.Unmarshal([]byte(`"2024-06-21"`), &fromString))

		assert.Equal(t, ExpirationDate("2024-06-21"), fromEpoch)
		assert.Equal(t, fromEpoch, fromString)
	})

	t.Run("intraday epoch truncates to the calendar date", func(t *testing.T) {
		var d ExpirationDate
		require.NoError(t, json.Unmarshal([]byte(`1718983800`), &d))
		assert.Equal(t, "2024-06-21", d.String())
	})

	t.Run("rfc3339 strings are accepted", func(t *testing.T) {
		var d ExpirationDate
		require.NoError(t, json.Unmarshal([]byte(`"2024-06-21T20:00:00Z"`), &d))
		assert.Equal(t, "2024-06-21", d.String())
	})

	t.Run("null and empty decode to the zero value", func(t *testing.T) {
		var d ExpirationDate
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())

		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("garbage is an error", func(t *testing.T) {
		var d ExpirationDate
		assert.Error(t, json.Unmarshal([]byte(`"next friday"`), &d))
	})

	t.Run("round trips through ToTime", func(t *testing.T) {
		d := ExpirationDate("2024-06-21")
		parsed, err := d.ToTime()
		require.NoError(t, err)
		assert.Equal(t, d, NewExpirationDate(parsed))
	})
}
