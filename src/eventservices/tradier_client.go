package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/option-quoter/src/eventmodels"
)

// TradierClient fetches option expirations, underlying quotes, and option
// chains from a Tradier-compatible REST API.
type TradierClient struct {
	ExpirationsURL string
	ChainURL       string
	QuotesURL      string
	BearerToken    string
}

func NewTradierClient(expirationsURL, chainURL, quotesURL, bearerToken string) *TradierClient {
	return &TradierClient{
		ExpirationsURL: expirationsURL,
		ChainURL:       chainURL,
		QuotesURL:      quotesURL,
		BearerToken:    bearerToken,
	}
}

func (c *TradierClient) fetchJSON(ctx context.Context, url string, queryParams map[string]string, result interface{}) error {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("TradierClient: fetchJSON: failed to create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range queryParams {
		q.Add(k, v)
	}

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.BearerToken))

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("TradierClient: fetchJSON: failed to fetch %s: %w", url, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("TradierClient: fetchJSON: %s returned http code %v", url, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return fmt.Errorf("TradierClient: fetchJSON: failed to decode json: %w", err)
	}

	return nil
}

// FetchUnderlyingSnapshot returns the listed expiration dates and the
// underlying's last price. A missing price is not an error: the snapshot
// carries Last == 0 and the caller skips Greeks.
func (c *TradierClient) FetchUnderlyingSnapshot(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.UnderlyingSnapshot, error) {
	tracer := otel.Tracer("TradierClient")
	ctx, span := tracer.Start(ctx, "FetchUnderlyingSnapshot")
	defer span.End()

	var expirationsDTO eventmodels.OptionExpirationsResponseDTO
	if err := c.fetchJSON(ctx, c.ExpirationsURL, map[string]string{"symbol": symbol.String()}, &expirationsDTO); err != nil {
		return nil, fmt.Errorf("FetchUnderlyingSnapshot: failed to fetch expirations for %s: %w", symbol, err)
	}

	snapshot := &eventmodels.UnderlyingSnapshot{
		Symbol:      symbol,
		Expirations: expirationsDTO.Dates(),
	}

	var quoteDTO eventmodels.StockQuoteResponseDTO
	if err := c.fetchJSON(ctx, c.QuotesURL, map[string]string{"symbols": symbol.String()}, &quoteDTO); err != nil {
		return nil, fmt.Errorf("FetchUnderlyingSnapshot: failed to fetch quote for %s: %w", symbol, err)
	}

	snapshot.Last = quoteDTO.Quotes.Quote.Last
	if snapshot.Last == 0 {
		snapshot.Last = quoteDTO.Quotes.Quote.PrevClose
	}

	return snapshot, nil
}

// FetchOptionChain returns one expiration's contracts, split into calls and
// puts.
func (c *TradierClient) FetchOptionChain(ctx context.Context, symbol eventmodels.StockSymbol, expiration eventmodels.ExpirationDate) (*eventmodels.OptionChainDTO, error) {
	tracer := otel.Tracer("TradierClient")
	ctx, span := tracer.Start(ctx, "FetchOptionChain")
	defer span.End()

	var chainDTO eventmodels.OptionChainResponseDTO
	params := map[string]string{
		"symbol":     symbol.String(),
		"expiration": expiration.String(),
	}

	if err := c.fetchJSON(ctx, c.ChainURL, params, &chainDTO); err != nil {
		return nil, fmt.Errorf("FetchOptionChain: failed to fetch chain for %s %s: %w", symbol, expiration, err)
	}

	return chainDTO.SplitBySide(), nil
}
