package eventservices

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

type stubYieldQuoter struct {
	percent float64
	err     error
}

func (s *stubYieldQuoter) FetchYieldQuote(ctx context.Context) (float64, error) {
	return s.percent, s.err
}

type stubTreasuryFeed struct {
	percent float64
	err     error
}

func (s *stubTreasuryFeed) FetchLatestRate(ctx context.Context) (float64, error) {
	return s.percent, s.err
}

func TestRiskFreeRateResolver(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 21, 14, 30, 0, 0, time.UTC)

	t.Run("primary source wins when healthy", func(t *testing.T) {
		resolver := NewRiskFreeRateResolver(
			&stubYieldQuoter{percent: 4.5},
			&stubTreasuryFeed{percent: 4.1},
			0.045,
		)

		observation := resolver.Resolve(ctx, now)

		assert.Equal(t, eventmodels.RateSourceTradier, observation.Source)
		assert.InDelta(t, 0.045, observation.Rate, 1e-12)
		assert.Equal(t, now, observation.Timestamp)
	})

	t.Run("falls through to treasury feed when primary errors", func(t *testing.T) {
		resolver := NewRiskFreeRateResolver(
			&stubYieldQuoter{err: fmt.Errorf("connection refused")},
			&stubTreasuryFeed{percent: 4.3},
			0.045,
		)

		observation := resolver.Resolve(ctx, now)

		assert.Equal(t, eventmodels.RateSourceTreasuryGov, observation.Source)
		assert.InDelta(t, 0.043, observation.Rate, 1e-12)
	})

	t.Run("non-positive primary value is treated as a failure", func(t *testing.T) {
		resolver := NewRiskFreeRateResolver(
			&stubYieldQuoter{percent: -1},
			&stubTreasuryFeed{percent: 4.3},
			0.045,
		)

		observation := resolver.Resolve(ctx, now)

		assert.Equal(t, eventmodels.RateSourceTreasuryGov, observation.Source)
	})

	t.Run("falls back to the constant when both sources fail", func(t *testing.T) {
		resolver := NewRiskFreeRateResolver(
			&stubYieldQuoter{err: fmt.Errorf("timeout")},
			&stubTreasuryFeed{err: fmt.Errorf("http 500")},
			0.045,
		)

		observation := resolver.Resolve(ctx, now)

		assert.Equal(t, eventmodels.RateSourceFallback, observation.Source)
		assert.Equal(t, 0.045, observation.Rate)
	})

	t.Run("never fails even with no sources wired", func(t *testing.T) {
		resolver := NewRiskFreeRateResolver(nil, nil, 0.045)

		observation := resolver.Resolve(ctx, now)

		assert.Equal(t, eventmodels.RateSourceFallback, observation.Source)
		assert.Equal(t, 0.045, observation.Rate)
	})
}
