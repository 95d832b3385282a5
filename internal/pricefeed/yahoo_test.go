package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartServer(t *testing.T, body string) *YahooFeed {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "interval=1d") {
			t.Errorf("query = %q, want daily interval", r.URL.RawQuery)
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFeed(2 * time.Second)
	f.baseURL = srv.URL + "/"
	return f
}

func TestRecentClose(t *testing.T) {
	f := chartServer(t, `{
		"chart": {
			"result": [{
				"indicators": {"quote": [{"close": [1890.2, null, 1902.5, null]}]}
			}],
			"error": null
		}
	}`)

	price, err := f.RecentClose(context.Background(), "GC=F", "5d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 1902.5 {
		t.Errorf("price = %v, want the last non-null close 1902.5", price)
	}
}

func TestRecentCloseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"api error",
			`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`,
		},
		{
			"empty result",
			`{"chart": {"result": [], "error": null}}`,
		},
		{
			"all null closes",
			`{"chart": {"result": [{"indicators": {"quote": [{"close": [null, null]}]}}], "error": null}}`,
		},
		{
			"not json",
			`<html>rate limited</html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := chartServer(t, tt.body)
			if _, err := f.RecentClose(context.Background(), "GC=F", "5d"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRecentCloseHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFeed(2 * time.Second)
	f.baseURL = srv.URL + "/"
	if _, err := f.RecentClose(context.Background(), "GC=F", "30d"); err == nil {
		t.Error("expected an error on http 429")
	}
}
