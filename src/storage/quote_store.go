package storage

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

// QuoteBatchSize caps rows per insert so the statement's bind-parameter count
// stays safely under postgres' 65535 ceiling at 14 columns per row.
const QuoteBatchSize = 1000

type QuoteStore struct {
	db *gorm.DB
}

func NewQuoteStore(db *gorm.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

// SaveQuotes persists quotes in batches. Each batch is one multi-row insert
// with ON CONFLICT DO NOTHING on the natural key, so replaying the same
// quotes is a no-op. A batch failure aborts the call; batches already
// written stay committed.
func (s *QuoteStore) SaveQuotes(quotes []*eventmodels.OptionQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	log.Infof("saving %d quotes to database", len(quotes))

	onConflict := clause.OnConflict{
		Columns:   naturalKeyColumns(),
		DoNothing: true,
	}

	for _, batch := range ChunkQuotes(quotes, QuoteBatchSize) {
		if err := s.db.Clauses(onConflict).Create(batch).Error; err != nil {
			return fmt.Errorf("SaveQuotes: failed to insert batch of %d quotes: %w", len(batch), err)
		}
	}

	return nil
}

// SaveRiskFreeRate records the rate observation used for this run. The rate
// table is audit data only, so a failure here is logged and swallowed rather
// than aborting the ingestion.
func (s *QuoteStore) SaveRiskFreeRate(rate *eventmodels.RiskFreeRate) {
	if err := s.db.Create(rate).Error; err != nil {
		log.Errorf("SaveRiskFreeRate: failed to insert observation: %v", err)
		return
	}

	log.Infof("saved risk-free rate: %.2f%% (source: %s)", rate.Rate*100, rate.Source)
}

type TickerQuoteCount struct {
	Ticker string
	Count  int64
}

// RecentQuoteCounts returns per-ticker row counts captured since the given
// time, for health checks.
func (s *QuoteStore) RecentQuoteCounts(since time.Time) ([]TickerQuoteCount, error) {
	var counts []TickerQuoteCount

	err := s.db.Model(&eventmodels.OptionQuote{}).
		Select("ticker, count(*) as count").
		Where("time >= ?", since).
		Group("ticker").
		Order("ticker").
		Scan(&counts).Error

	if err != nil {
		return nil, fmt.Errorf("RecentQuoteCounts: failed to query counts: %w", err)
	}

	return counts, nil
}

func (s *QuoteStore) LatestRiskFreeRate() (*eventmodels.RiskFreeRate, error) {
	var rate eventmodels.RiskFreeRate

	if err := s.db.Order("timestamp desc").Take(&rate).Error; err != nil {
		return nil, fmt.Errorf("LatestRiskFreeRate: failed to query rate: %w", err)
	}

	return &rate, nil
}

func (s *QuoteStore) QuotesSince(since time.Time) ([]*eventmodels.OptionQuote, error) {
	var quotes []*eventmodels.OptionQuote

	err := s.db.
		Where("time >= ?", since).
		Order("time, ticker, expiration_date, strike, type").
		Find(&quotes).Error

	if err != nil {
		return nil, fmt.Errorf("QuotesSince: failed to query quotes: %w", err)
	}

	return quotes, nil
}

// ChunkQuotes splits quotes into slices of at most batchSize rows.
func ChunkQuotes(quotes []*eventmodels.OptionQuote, batchSize int) [][]*eventmodels.OptionQuote {
	var batches [][]*eventmodels.OptionQuote

	for i := 0; i < len(quotes); i += batchSize {
		end := i + batchSize
		if end > len(quotes) {
			end = len(quotes)
		}

		batches = append(batches, quotes[i:end])
	}

	return batches
}

func naturalKeyColumns() []clause.Column {
	names := eventmodels.OptionQuote{}.NaturalKeyColumns()

	columns := make([]clause.Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, clause.Column{Name: name})
	}

	return columns
}
