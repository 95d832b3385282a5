package interfaces

import "context"

// PriceFeed returns the most recent close for a symbol within a lookback
// window such as "5d" or "30d". An error means no price was available for
// that window.
type PriceFeed interface {
	RecentClose(ctx context.Context, symbol, window string) (float64, error)
}
