package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

func TestCalculate(t *testing.T) {
	t.Run("call and put deltas differ by exactly one", func(t *testing.T) {
		input := GreeksInput{
			StockPrice:       155,
			StrikePrice:      150,
			TimeToExpiration: 30.0 / 365,
			Volatility:       0.25,
			RiskFreeRate:     0.045,
			OptionType:       eventmodels.OptionTypeCall,
		}

		call, err := Calculate(input)
		require.NoError(t, err)

		input.OptionType = eventmodels.OptionTypePut
		put, err := Calculate(input)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, call.Delta-put.Delta, 1e-12)
	})

	t.Run("outputs stay in range across strikes and vols", func(t *testing.T) {
		for _, strike := range []float64{50, 100, 155, 300, 1000} {
			for _, vol := range []float64{0.05, 0.25, 0.8, 2.5} {
				for _, optionType := range []eventmodels.OptionType{eventmodels.OptionTypeCall, eventmodels.OptionTypePut} {
					greeks, err := Calculate(GreeksInput{
						StockPrice:       155,
						StrikePrice:      strike,
						TimeToExpiration: 0.1,
						Volatility:       vol,
						RiskFreeRate:     0.045,
						OptionType:       optionType,
					})

					require.NoError(t, err)
					assert.GreaterOrEqual(t, greeks.Delta, -1.0)
					assert.LessOrEqual(t, greeks.Delta, 1.0)
					assert.GreaterOrEqual(t, greeks.ProbOTM, 0.0)
					assert.LessOrEqual(t, greeks.ProbOTM, 1.0)
				}
			}
		}
	})

	t.Run("in the money call", func(t *testing.T) {
		greeks, err := Calculate(GreeksInput{
			StockPrice:       155,
			StrikePrice:      150,
			TimeToExpiration: 30.0 / 365,
			Volatility:       0.25,
			RiskFreeRate:     0.045,
			OptionType:       eventmodels.OptionTypeCall,
		})

		require.NoError(t, err)
		assert.Greater(t, greeks.Delta, 0.5)
		assert.Less(t, greeks.ProbOTM, 0.5)
	})

	t.Run("deep out of the money call never produces NaN", func(t *testing.T) {
		greeks, err := Calculate(GreeksInput{
			StockPrice:       155,
			StrikePrice:      10000,
			TimeToExpiration: 0.001,
			Volatility:       0.1,
			RiskFreeRate:     0.045,
			OptionType:       eventmodels.OptionTypeCall,
		})

		require.NoError(t, err)
		assert.False(t, math.IsNaN(greeks.Delta))
		assert.False(t, math.IsNaN(greeks.ProbOTM))
		assert.InDelta(t, 0.0, greeks.Delta, 1e-6)
		assert.InDelta(t, 1.0, greeks.ProbOTM, 1e-6)
	})

	t.Run("non-positive inputs are rejected", func(t *testing.T) {
		base := GreeksInput{
			StockPrice:       155,
			StrikePrice:      150,
			TimeToExpiration: 0.1,
			Volatility:       0.25,
			RiskFreeRate:     0.045,
			OptionType:       eventmodels.OptionTypeCall,
		}

		invalid := []func(input GreeksInput) GreeksInput{
			func(input GreeksInput) GreeksInput { input.StockPrice = 0; return input },
			func(input GreeksInput) GreeksInput { input.StrikePrice = -1; return input },
			func(input GreeksInput) GreeksInput { input.TimeToExpiration = 0; return input },
			func(input GreeksInput) GreeksInput { input.Volatility = -0.2; return input },
		}

		for _, mutate := range invalid {
			greeks, err := Calculate(mutate(base))
			assert.Error(t, err)
			assert.Nil(t, greeks)
		}
	})

	t.Run("invalid option type is rejected", func(t *testing.T) {
		_, err := Calculate(GreeksInput{
			StockPrice:       155,
			StrikePrice:      150,
			TimeToExpiration: 0.1,
			Volatility:       0.25,
			RiskFreeRate:     0.045,
			OptionType:       eventmodels.OptionType("straddle"),
		})

		assert.Error(t, err)
	})
}

func TestStdNormCDF(t *testing.T) {
	t.Run("matches the exact CDF", func(t *testing.T) {
		exact := func(x float64) float64 {
			return 0.5 * (1 + math.Erf(x/math.Sqrt2))
		}

		for _, x := range []float64{-3, -1.5, -0.5, 0, 0.5, 1.5, 3, 6} {
			assert.InDelta(t, exact(x), stdNormCDF(x), 1e-6, "x=%v", x)
		}
	})

	t.Run("saturates in the tails", func(t *testing.T) {
		assert.Equal(t, 0.0, stdNormCDF(-50))
		assert.Equal(t, 1.0, stdNormCDF(50))
	})
}

func TestTimeToExpiration(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("one year out", func(t *testing.T) {
		years := TimeToExpiration(now.AddDate(1, 0, 0), now)
		assert.InDelta(t, 1.0, years, 0.01)
	})

	t.Run("past expirations floor at the minimum", func(t *testing.T) {
		assert.Equal(t, 0.001, TimeToExpiration(now.AddDate(0, 0, -10), now))
		assert.Equal(t, 0.001, TimeToExpiration(now, now))
	})
}
