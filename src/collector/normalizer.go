package collector

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
	"github.com/jiaming2012/option-quoter/src/pricing"
)

// NormalizeContract converts one raw chain row into a stored quote. Contracts
// missing a strike or expiration are skipped. Greeks are attached only when
// the underlying price is known and the contract has a positive implied
// volatility; a pricing failure downgrades to a quote without Greeks.
//
// capturedAt is the run-level capture timestamp: every quote in one run
// shares it, which is what makes the natural key collide on reruns instead
// of minting a fresh row per call.
func NormalizeContract(symbol eventmodels.StockSymbol, dto *eventmodels.OptionContractDTO, optionType eventmodels.OptionType, underlyingLast float64, riskFreeRate float64, capturedAt time.Time) (*eventmodels.OptionQuote, bool) {
	if dto.Strike <= 0 || dto.ExpirationDate.IsZero() {
		log.Debugf("NormalizeContract: skipping %s contract with missing strike or expiration", symbol)
		return nil, false
	}

	quote := &eventmodels.OptionQuote{
		Timestamp:         capturedAt,
		Ticker:            symbol.String(),
		ExpirationDate:    dto.ExpirationDate.String(),
		Strike:            dto.Strike,
		OptionType:        optionType,
		Bid:               dto.Bid,
		Ask:               dto.Ask,
		Last:              dto.LastPrice,
		Volume:            dto.Volume,
		OpenInterest:      dto.OpenInterest,
		ImpliedVolatility: dto.ImpliedVolatility,
	}

	if underlyingLast > 0 {
		underlying := underlyingLast
		quote.UnderlyingLast = &underlying
	}

	if underlyingLast > 0 && dto.ImpliedVolatility > 0 {
		expiration, err := dto.ExpirationDate.ToTime()
		if err != nil {
			log.Warnf("NormalizeContract: %v", err)
			return quote, true
		}

		greeks, err := pricing.Calculate(pricing.GreeksInput{
			StockPrice:       underlyingLast,
			StrikePrice:      dto.Strike,
			TimeToExpiration: pricing.TimeToExpiration(expiration, capturedAt),
			Volatility:       dto.ImpliedVolatility,
			RiskFreeRate:     riskFreeRate,
			OptionType:       optionType,
		})

		if err != nil {
			log.Warnf("NormalizeContract: skipping greeks for %s %s %v: %v", symbol, dto.ExpirationDate, dto.Strike, err)
			return quote, true
		}

		quote.Delta = &greeks.Delta
		quote.ProbOTM = &greeks.ProbOTM
	}

	return quote, true
}
