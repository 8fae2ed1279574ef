package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

type GreeksInput struct {
	StockPrice       float64
	StrikePrice      float64
	TimeToExpiration float64 // years
	Volatility       float64
	RiskFreeRate     float64
	OptionType       eventmodels.OptionType
}

type Greeks struct {
	Delta   float64
	ProbOTM float64
}

// minTimeToExpiration keeps same-day and past expirations from degenerating
// into a zero or negative time input.
const minTimeToExpiration = 0.001

// Calculate computes delta and probability-OTM from the Black-Scholes closed
// form. Non-positive price, strike, time, or volatility inputs are a
// validation error; the caller stores the quote without Greeks.
func Calculate(input GreeksInput) (*Greeks, error) {
	if err := input.OptionType.Validate(); err != nil {
		return nil, fmt.Errorf("Calculate: %w", err)
	}

	if input.StockPrice <= 0 || input.StrikePrice <= 0 || input.TimeToExpiration <= 0 || input.Volatility <= 0 {
		return nil, fmt.Errorf("Calculate: invalid input: stock=%v strike=%v time=%v vol=%v", input.StockPrice, input.StrikePrice, input.TimeToExpiration, input.Volatility)
	}

	sqrtT := math.Sqrt(input.TimeToExpiration)
	d1 := (math.Log(input.StockPrice/input.StrikePrice) + (input.RiskFreeRate+input.Volatility*input.Volatility/2)*input.TimeToExpiration) / (input.Volatility * sqrtT)
	d2 := d1 - input.Volatility*sqrtT

	nd1 := stdNormCDF(d1)
	nd2 := stdNormCDF(d2)

	greeks := &Greeks{}

	if input.OptionType == eventmodels.OptionTypeCall {
		greeks.Delta = nd1
		greeks.ProbOTM = 1 - nd2
	} else {
		greeks.Delta = nd1 - 1
		greeks.ProbOTM = nd2
	}

	return greeks, nil
}

// TimeToExpiration returns the year fraction between now and the expiration,
// floored at minTimeToExpiration.
func TimeToExpiration(expiration, now time.Time) float64 {
	days := expiration.Sub(now).Hours() / 24
	years := days / 365

	return math.Max(years, minTimeToExpiration)
}

// stdNormCDF is the Abramowitz-Stegun polynomial approximation of the
// standard normal CDF, accurate to ~1e-7. Saturates outside |x| > 8 where
// the tail is below the approximation error.
func stdNormCDF(x float64) float64 {
	if x > 8 {
		return 1
	}

	if x < -8 {
		return 0
	}

	t := 1 / (1 + 0.2316419*math.Abs(x))
	d := 0.3989423 * math.Exp(-x*x/2)
	probability := d * t * (0.3193815 + t*(-0.3565638+t*(1.781478+t*(-1.821256+t*1.330274))))

	if x > 0 {
		return 1 - probability
	}

	return probability
}
