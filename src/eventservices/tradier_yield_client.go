package eventservices

import (
	"context"
	"fmt"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

// TradierYieldClient quotes a treasury yield instrument (e.g. TNX for the
// 10-year note) through the same quotes endpoint used for underlyings.
type TradierYieldClient struct {
	QuotesURL   string
	BearerToken string
	YieldSymbol string
}

func NewTradierYieldClient(quotesURL, bearerToken, yieldSymbol string) *TradierYieldClient {
	return &TradierYieldClient{
		QuotesURL:   quotesURL,
		BearerToken: bearerToken,
		YieldSymbol: yieldSymbol,
	}
}

func (c *TradierYieldClient) FetchYieldQuote(ctx context.Context) (float64, error) {
	client := &TradierClient{
		QuotesURL:   c.QuotesURL,
		BearerToken: c.BearerToken,
	}

	var dto eventmodels.StockQuoteResponseDTO
	if err := client.fetchJSON(ctx, c.QuotesURL, map[string]string{"symbols": c.YieldSymbol}, &dto); err != nil {
		return 0, fmt.Errorf("FetchYieldQuote: failed to fetch quote for %s: %w", c.YieldSymbol, err)
	}

	percent := dto.Quotes.Quote.Last
	if percent == 0 {
		percent = dto.Quotes.Quote.PrevClose
	}

	if percent <= 0 {
		return 0, fmt.Errorf("FetchYieldQuote: invalid yield value %v for %s", percent, c.YieldSymbol)
	}

	return percent, nil
}
