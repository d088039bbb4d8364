// Package marketdata fetches live prices from external sources: Yahoo
// Finance for generic tickers and the Casablanca exchange page for Moroccan
// listings, with a short-lived Redis cache in front.
package marketdata

import "context"

// Quoter returns the current price for a ticker symbol.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}
