package eventmodels

import "time"

type RateSource string

const (
	RateSourceTradier     RateSource = "tradier"
	RateSourceTreasuryGov RateSource = "treasury_gov"
	RateSourceFallback    RateSource = "fallback"
)

// RiskFreeRate is one resolved annualized rate observation, stored for audit
// alongside the quotes it priced.
type RiskFreeRate struct {
	Timestamp time.Time  `gorm:"column:timestamp;type:timestamp;not null"`
	Rate      float64    `gorm:"column:rate;type:numeric;not null"`
	Source    RateSource `gorm:"column:source;type:text;not null"`
}

func (RiskFreeRate) TableName() string {
	return "risk_free_rate"
}
