package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trademood/internal/interfaces"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooFeed reads recent daily closes from the Yahoo Finance chart API. It
// supports futures-style symbols such as "GC=F" directly.
type YahooFeed struct {
	baseURL string
	client  *http.Client
}

var _ interfaces.PriceFeed = (*YahooFeed)(nil)

func NewYahooFeed(timeout time.Duration) *YahooFeed {
	return &YahooFeed{
		baseURL: yahooChartURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// RecentClose returns the last available daily close within the window
// (e.g. "5d", "30d"). An error means the window held no usable price.
func (f *YahooFeed) RecentClose(ctx context.Context, symbol, window string) (float64, error) {
	u := f.baseURL + url.PathEscape(symbol) + "?range=" + url.QueryEscape(window) + "&interval=1d"

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; trademood/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("price feed http %d", resp.StatusCode)
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return 0, fmt.Errorf("invalid price response: %w", err)
	}
	if cr.Chart.Error != nil {
		return 0, fmt.Errorf("price feed error: %s", cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, fmt.Errorf("no price data for %s in window %s", symbol, window)
	}

	closes := cr.Chart.Result[0].Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], nil
		}
	}
	return 0, fmt.Errorf("no close prices for %s in window %s", symbol, window)
}
