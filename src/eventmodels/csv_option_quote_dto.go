package eventmodels

import "time"

type CsvOptionQuoteDTO struct {
	Timestamp         string  `csv:"time"`
	Ticker            string  `csv:"ticker"`
	ExpirationDate    string  `csv:"expiration_date"`
	Strike            float64 `csv:"strike"`
	OptionType        string  `csv:"type"`
	Bid               float64 `csv:"bid"`
	Ask               float64 `csv:"ask"`
	Last              float64 `csv:"last"`
	Volume            int     `csv:"volume"`
	OpenInterest      int     `csv:"open_interest"`
	ImpliedVolatility float64 `csv:"implied_volatility"`
	Delta             float64 `csv:"delta"`
	ProbOTM           float64 `csv:"prob_otm"`
	UnderlyingLast    float64 `csv:"underlying_last"`
}

func NewCsvOptionQuoteDTO(quote *OptionQuote) *CsvOptionQuoteDTO {
	dto := &CsvOptionQuoteDTO{
		Timestamp:         quote.Timestamp.Format(time.RFC3339),
		Ticker:            quote.Ticker,
		ExpirationDate:    quote.ExpirationDate,
		Strike:            quote.Strike,
		OptionType:        string(quote.OptionType),
		Bid:               quote.Bid,
		Ask:               quote.Ask,
		Last:              quote.Last,
		Volume:            quote.Volume,
		OpenInterest:      quote.OpenInterest,
		ImpliedVolatility: quote.ImpliedVolatility,
	}

	if quote.Delta != nil {
		dto.Delta = *quote.Delta
	}

	if quote.ProbOTM != nil {
		dto.ProbOTM = *quote.ProbOTM
	}

	if quote.UnderlyingLast != nil {
		dto.UnderlyingLast = *quote.UnderlyingLast
	}

	return dto
}
