package eventmodels

import (
	"fmt"
	"strings"
)

const (
	DefaultWindowDays       = 14
	ExtendedWindowDays      = 70
	DefaultFallbackRiskRate = 0.045
)

type CollectorConfigYAML struct {
	Tickers               []string `yaml:"tickers"`
	ExtendedWindowTickers []string `yaml:"extendedWindowTickers"`
	DefaultWindowDays     int      `yaml:"defaultWindowDays"`
	ExtendedWindowDays    int      `yaml:"extendedWindowDays"`
	FallbackRiskFreeRate  float64  `yaml:"fallbackRiskFreeRate"`
}

func (c *CollectorConfigYAML) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("CollectorConfigYAML: Validate: no tickers configured")
	}

	if c.DefaultWindowDays <= 0 {
		c.DefaultWindowDays = DefaultWindowDays
	}

	if c.ExtendedWindowDays <= 0 {
		c.ExtendedWindowDays = ExtendedWindowDays
	}

	if c.FallbackRiskFreeRate <= 0 {
		c.FallbackRiskFreeRate = DefaultFallbackRiskRate
	}

	return nil
}

func (c *CollectorConfigYAML) Symbols() []StockSymbol {
	symbols := make([]StockSymbol, 0, len(c.Tickers))
	for _, ticker := range c.Tickers {
		symbols = append(symbols, NewStockSymbol(ticker))
	}

	return symbols
}

// WindowDays maps a symbol to its expiration lookahead window. Symbols in the
// extended set fetch further out than the rest; the match is case-insensitive
// and unknown symbols always get the default window.
func (c *CollectorConfigYAML) WindowDays(symbol StockSymbol) int {
	sym1 := strings.ToLower(string(symbol))
	for _, ticker := range c.ExtendedWindowTickers {
		sym2 := strings.ToLower(ticker)
		if sym1 == sym2 {
			return c.ExtendedWindowDays
		}
	}

	return c.DefaultWindowDays
}
