package eventmodels

import (
	"time"
)

// OptionQuote is one normalized option-chain row. Rows are immutable once
// built; reruns inside the same capture window collide on the natural key
// and are dropped by the insert's conflict policy.
type OptionQuote struct {
	Timestamp         time.Time  `gorm:"column:time;type:timestamp;not null;uniqueIndex:idx_option_quote_natural_key,priority:1"`
	Ticker            string     `gorm:"column:ticker;type:text;not null;uniqueIndex:idx_option_quote_natural_key,priority:2"`
	ExpirationDate    string     `gorm:"column:expiration_date;type:date;not null;uniqueIndex:idx_option_quote_natural_key,priority:3"`
	Strike            float64    `gorm:"column:strike;type:numeric;not null;uniqueIndex:idx_option_quote_natural_key,priority:4"`
	OptionType        OptionType `gorm:"column:type;type:text;not null;uniqueIndex:idx_option_quote_natural_key,priority:5"`
	Bid               float64    `gorm:"column:bid;type:numeric;not null"`
	Ask               float64    `gorm:"column:ask;type:numeric;not null"`
	Last              float64    `gorm:"column:last;type:numeric;not null"`
	Volume            int        `gorm:"column:volume;not null"`
	OpenInterest      int        `gorm:"column:open_interest;not null"`
	ImpliedVolatility float64    `gorm:"column:implied_volatility;type:numeric;not null"`
	Delta             *float64   `gorm:"column:delta;type:numeric"`
	ProbOTM           *float64   `gorm:"column:prob_otm;type:numeric"`
	UnderlyingLast    *float64   `gorm:"column:underlying_last;type:numeric"`
}

func (OptionQuote) TableName() string {
	return "option_quotes"
}

// NaturalKeyColumns is the conflict target for idempotent inserts.
func (OptionQuote) NaturalKeyColumns() []string {
	return []string{"time", "ticker", "expiration_date", "strike", "type"}
}
