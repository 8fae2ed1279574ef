package eventmodels

type optionExpirationListDTO struct {
	Date []ExpirationDate `json:"date"`
}

type OptionExpirationsResponseDTO struct {
	Expirations optionExpirationListDTO `json:"expirations"`
}

func (dto *OptionExpirationsResponseDTO) Dates() []ExpirationDate {
	return dto.Expirations.Date
}

type StockQuoteDTO struct {
	Symbol    string  `json:"symbol"`
	Last      float64 `json:"last"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	PrevClose float64 `json:"prevclose"`
}

type StockQuoteResponseDTO struct {
	Quotes struct {
		Quote StockQuoteDTO `json:"quote"`
	} `json:"quotes"`
}

// UnderlyingSnapshot is the per-ticker context fetched once before walking
// the chain: the listed expirations plus the underlying's last price. A zero
// Last means the price was unavailable and Greeks are skipped downstream.
type UnderlyingSnapshot struct {
	Symbol      StockSymbol
	Last        float64
	Expirations []ExpirationDate
}
