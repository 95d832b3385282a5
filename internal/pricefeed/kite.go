package pricefeed

import (
	"context"
	"fmt"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"trademood/internal/interfaces"
)

// KiteFeed reads prices from the Zerodha Kite Connect API, for instruments
// traded on Indian exchanges. The window parameter is ignored: Kite's last
// traded price is always the freshest observation available.
type KiteFeed struct {
	kc       *kiteconnect.Client
	exchange string
}

var _ interfaces.PriceFeed = (*KiteFeed)(nil)

func NewKiteFeed(apiKey, accessToken, exchange string) *KiteFeed {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return &KiteFeed{kc: kc, exchange: exchange}
}

func (f *KiteFeed) RecentClose(ctx context.Context, symbol, window string) (float64, error) {
	instrument := f.exchange + ":" + symbol

	quotes, err := f.kc.GetLTP(instrument)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch LTP for %s: %w", instrument, err)
	}

	q, ok := quotes[instrument]
	if !ok || q.LastPrice == 0 {
		return 0, fmt.Errorf("no price data for %s", instrument)
	}
	return q.LastPrice, nil
}
