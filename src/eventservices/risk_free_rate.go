package eventservices

import (
	"context"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

// YieldQuoter is the primary rate source: a quote for a treasury yield
// instrument, reported as a percentage (e.g. 4.5 for 4.5%).
type YieldQuoter interface {
	FetchYieldQuote(ctx context.Context) (float64, error)
}

// TreasuryFeed is the secondary source: the most recent average interest
// rate record from the government fiscal data feed, also as a percentage.
type TreasuryFeed interface {
	FetchLatestRate(ctx context.Context) (float64, error)
}

// RiskFreeRateResolver walks an ordered fallback chain: primary quote,
// treasury feed, hardcoded constant. Resolve never fails; every step's
// failure is logged and absorbed so pricing always has a rate to work with.
type RiskFreeRateResolver struct {
	Primary      YieldQuoter
	Secondary    TreasuryFeed
	FallbackRate float64
}

func NewRiskFreeRateResolver(primary YieldQuoter, secondary TreasuryFeed, fallbackRate float64) *RiskFreeRateResolver {
	return &RiskFreeRateResolver{
		Primary:      primary,
		Secondary:    secondary,
		FallbackRate: fallbackRate,
	}
}

func validRatePercent(percent float64) bool {
	return percent > 0 && !math.IsNaN(percent) && !math.IsInf(percent, 0)
}

func (r *RiskFreeRateResolver) Resolve(ctx context.Context, now time.Time) *eventmodels.RiskFreeRate {
	if r.Primary != nil {
		percent, err := r.Primary.FetchYieldQuote(ctx)
		if err != nil {
			log.Warnf("RiskFreeRateResolver: primary yield quote failed: %v", err)
		} else if !validRatePercent(percent) {
			log.Warnf("RiskFreeRateResolver: primary returned invalid rate value: %v", percent)
		} else {
			return &eventmodels.RiskFreeRate{
				Timestamp: now,
				Rate:      percent / 100,
				Source:    eventmodels.RateSourceTradier,
			}
		}
	}

	if r.Secondary != nil {
		percent, err := r.Secondary.FetchLatestRate(ctx)
		if err != nil {
			log.Warnf("RiskFreeRateResolver: treasury feed failed: %v", err)
		} else if !validRatePercent(percent) {
			log.Warnf("RiskFreeRateResolver: treasury feed returned invalid rate value: %v", percent)
		} else {
			return &eventmodels.RiskFreeRate{
				Timestamp: now,
				Rate:      percent / 100,
				Source:    eventmodels.RateSourceTreasuryGov,
			}
		}
	}

	log.Warnf("RiskFreeRateResolver: all sources failed, using fallback rate %.2f%%", r.FallbackRate*100)

	return &eventmodels.RiskFreeRate{
		Timestamp: now,
		Rate:      r.FallbackRate,
		Source:    eventmodels.RateSourceFallback,
	}
}
