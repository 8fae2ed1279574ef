package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

func TestNormalizeContract(t *testing.T) {
	symbol := eventmodels.NewStockSymbol("AAPL")
	capturedAt := time.Date(2024, 5, 22, 14, 30, 0, 0, time.UTC)

	t.Run("in the money call gets greeks", func(t *testing.T) {
		dto := &eventmodels.OptionContractDTO{
			Strike:            150,
			ExpirationDate:    "2024-06-21",
			Bid:               5.6,
			Ask:               5.8,
			LastPrice:         5.7,
			Volume:            150,
			OpenInterest:      28206,
			ImpliedVolatility: 0.25,
		}

		quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypeCall, 155, 0.045, capturedAt)
		require.True(t, ok)

		assert.Equal(t, "AAPL", quote.Ticker)
		assert.Equal(t, "2024-06-21", quote.ExpirationDate)
		assert.Equal(t, capturedAt, quote.Timestamp)

		require.NotNil(t, quote.Delta)
		require.NotNil(t, quote.ProbOTM)
		require.NotNil(t, quote.UnderlyingLast)

		assert.Greater(t, *quote.Delta, 0.5)
		assert.Less(t, *quote.ProbOTM, 0.5)
		assert.Equal(t, 155.0, *quote.UnderlyingLast)
	})

	t.Run("missing strike or expiration is skipped", func(t *testing.T) {
		_, ok := NormalizeContract(symbol, &eventmodels.OptionContractDTO{ExpirationDate: "2024-06-21"}, eventmodels.OptionTypeCall, 155, 0.045, capturedAt)
		assert.False(t, ok)

		_, ok = NormalizeContract(symbol, &eventmodels.OptionContractDTO{Strike: 150}, eventmodels.OptionTypeCall, 155, 0.045, capturedAt)
		assert.False(t, ok)
	})

	t.Run("no implied volatility stores the quote without greeks", func(t *testing.T) {
		dto := &eventmodels.OptionContractDTO{
			Strike:         150,
			ExpirationDate: "2024-06-21",
			Bid:            5.6,
		}

		quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypeCall, 155, 0.045, capturedAt)
		require.True(t, ok)

		assert.Nil(t, quote.Delta)
		assert.Nil(t, quote.ProbOTM)
		require.NotNil(t, quote.UnderlyingLast)
	})

	t.Run("unknown underlying price stores the quote without greeks", func(t *testing.T) {
		dto := &eventmodels.OptionContractDTO{
			Strike:            150,
			ExpirationDate:    "2024-06-21",
			ImpliedVolatility: 0.25,
		}

		quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypePut, 0, 0.045, capturedAt)
		require.True(t, ok)

		assert.Nil(t, quote.Delta)
		assert.Nil(t, quote.ProbOTM)
		assert.Nil(t, quote.UnderlyingLast)
	})

	t.Run("omitted provider fields default to zero", func(t *testing.T) {
		dto := &eventmodels.OptionContractDTO{
			Strike:         150,
			ExpirationDate: "2024-06-21",
		}

		quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypePut, 155, 0.045, capturedAt)
		require.True(t, ok)

		assert.Equal(t, 0.0, quote.Bid)
		assert.Equal(t, 0.0, quote.Ask)
		assert.Equal(t, 0.0, quote.Last)
		assert.Equal(t, 0, quote.Volume)
		assert.Equal(t, 0, quote.OpenInterest)
		assert.Equal(t, 0.0, quote.ImpliedVolatility)
	})

	t.Run("same-day expiration still prices with the time floor", func(t *testing.T) {
		dto := &eventmodels.OptionContractDTO{
			Strike:            150,
			ExpirationDate:    eventmodels.NewExpirationDate(capturedAt),
			ImpliedVolatility: 0.25,
		}

		quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypeCall, 155, 0.045, capturedAt)
		require.True(t, ok)
		require.NotNil(t, quote.Delta)
	})
}
