package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
	"github.com/jiaming2012/option-quoter/src/eventservices"
)

// QuoteSaver is the persistence boundary the collector writes through.
type QuoteSaver interface {
	SaveQuotes(quotes []*eventmodels.OptionQuote) error
	SaveRiskFreeRate(rate *eventmodels.RiskFreeRate)
}

type TickerResult struct {
	Symbol      eventmodels.StockSymbol
	QuotesSaved int
	MeanIV      float64
}

type RunSummary struct {
	RunID            uuid.UUID
	CapturedAt       time.Time
	RiskFreeRate     *eventmodels.RiskFreeRate
	Results          []TickerResult
	TotalQuotesSaved int
}

// Collector walks the configured tickers sequentially, one chain fetch at a
// time, so the provider's rate limits are respected and every quote in a run
// is priced with the same risk-free rate and capture timestamp.
type Collector struct {
	Provider     eventmodels.MarketDataProvider
	RateResolver *eventservices.RiskFreeRateResolver
	Store        QuoteSaver
	Config       *eventmodels.CollectorConfigYAML
}

func NewCollector(provider eventmodels.MarketDataProvider, rateResolver *eventservices.RiskFreeRateResolver, store QuoteSaver, config *eventmodels.CollectorConfigYAML) *Collector {
	return &Collector{
		Provider:     provider,
		RateResolver: rateResolver,
		Store:        store,
		Config:       config,
	}
}

// Run processes each symbol in order. A provider failure costs that symbol
// its quotes and processing continues; a storage failure aborts the run with
// the originating symbol in the error. Quotes saved before the failure stay
// committed.
func (c *Collector) Run(ctx context.Context, symbols []eventmodels.StockSymbol) (*RunSummary, error) {
	tracer := otel.Tracer("Collector")
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	capturedAt := time.Now().UTC()

	summary := &RunSummary{
		RunID:      uuid.New(),
		CapturedAt: capturedAt,
	}

	riskFreeRate := c.RateResolver.Resolve(ctx, capturedAt)
	summary.RiskFreeRate = riskFreeRate

	log.WithFields(log.Fields{
		"runID":  summary.RunID,
		"rate":   riskFreeRate.Rate,
		"source": riskFreeRate.Source,
	}).Info("starting quote collection run")

	c.Store.SaveRiskFreeRate(riskFreeRate)

	for _, symbol := range symbols {
		quotes, err := c.collectTicker(ctx, symbol, riskFreeRate.Rate, capturedAt)
		if err != nil {
			log.Errorf("Run: failed to collect %s, continuing: %v", symbol, err)
			summary.Results = append(summary.Results, TickerResult{Symbol: symbol})
			continue
		}

		if err := c.Store.SaveQuotes(quotes); err != nil {
			return summary, fmt.Errorf("Run: failed to save quotes for %s: %w", symbol, err)
		}

		summary.Results = append(summary.Results, TickerResult{
			Symbol:      symbol,
			QuotesSaved: len(quotes),
			MeanIV:      meanImpliedVolatility(quotes),
		})
		summary.TotalQuotesSaved += len(quotes)
	}

	log.WithFields(log.Fields{
		"runID":       summary.RunID,
		"totalQuotes": summary.TotalQuotesSaved,
	}).Info("quote collection run finished")

	return summary, nil
}

func (c *Collector) collectTicker(ctx context.Context, symbol eventmodels.StockSymbol, riskFreeRate float64, capturedAt time.Time) ([]*eventmodels.OptionQuote, error) {
	windowDays := c.Config.WindowDays(symbol)

	log.Infof("fetching options for %s (expirations up to %d days out)", symbol, windowDays)

	snapshot, err := c.Provider.FetchUnderlyingSnapshot(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("collectTicker: failed to fetch snapshot: %w", err)
	}

	if snapshot.Last == 0 {
		log.Warnf("collectTicker: no underlying price for %s, greeks will not be calculated", symbol)
	}

	expirations := filterExpirations(snapshot.Expirations, capturedAt, windowDays)

	log.Infof("found %d expirations for %s within %d days", len(expirations), symbol, windowDays)

	var allQuotes []*eventmodels.OptionQuote

	for _, expiration := range expirations {
		chain, err := c.Provider.FetchOptionChain(ctx, symbol, expiration)
		if err != nil {
			return nil, fmt.Errorf("collectTicker: failed to fetch chain for %s: %w", expiration, err)
		}

		for _, dto := range chain.Calls {
			if quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypeCall, snapshot.Last, riskFreeRate, capturedAt); ok {
				allQuotes = append(allQuotes, quote)
			}
		}

		for _, dto := range chain.Puts {
			if quote, ok := NormalizeContract(symbol, dto, eventmodels.OptionTypePut, snapshot.Last, riskFreeRate, capturedAt); ok {
				allQuotes = append(allQuotes, quote)
			}
		}
	}

	return allQuotes, nil
}

// filterExpirations keeps dates inside [start of today, today + windowDays].
func filterExpirations(expirations []eventmodels.ExpirationDate, now time.Time, windowDays int) []eventmodels.ExpirationDate {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	maxDate := startOfDay.AddDate(0, 0, windowDays)

	var filtered []eventmodels.ExpirationDate

	for _, expiration := range expirations {
		t, err := expiration.ToTime()
		if err != nil {
			log.Warnf("filterExpirations: %v", err)
			continue
		}

		if t.Before(startOfDay) || t.After(maxDate) {
			continue
		}

		filtered = append(filtered, expiration)
	}

	return filtered
}

func meanImpliedVolatility(quotes []*eventmodels.OptionQuote) float64 {
	var quoted []float64
	for _, q := range quotes {
		if q.ImpliedVolatility > 0 {
			quoted = append(quoted, q.ImpliedVolatility)
		}
	}

	if len(quoted) == 0 {
		return 0
	}

	mean, err := stats.Mean(quoted)
	if err != nil {
		return 0
	}

	return mean
}
