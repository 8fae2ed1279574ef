package eventmodels

import "context"

// MarketDataProvider is the transport boundary for option-chain data. The
// collector only ever sees decoded DTOs; retries, auth, and rate limits live
// behind the implementation.
type MarketDataProvider interface {
	FetchUnderlyingSnapshot(ctx context.Context, symbol StockSymbol) (*UnderlyingSnapshot, error)
	FetchOptionChain(ctx context.Context, symbol StockSymbol, expiration ExpirationDate) (*OptionChainDTO, error)
}
