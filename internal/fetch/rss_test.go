package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Market News</title>
    <item>
      <title>Gold surges to record high</title>
      <link>https://example.com/gold-surges</link>
      <description>Gold futures climbed on safe-haven demand.</description>
      <pubDate>Mon, 02 Mar 2026 09:30:00 -0500</pubDate>
    </item>
    <item>
      <title>Silver steady</title>
      <link>https://example.com/silver-steady</link>
      <description>Silver held its range.</description>
      <pubDate>not a date</pubDate>
    </item>
    <item>
      <title>Copper dips</title>
      <link>https://example.com/copper-dips</link>
      <description></description>
    </item>
  </channel>
</rss>`

func TestFetchRSSFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("user-agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL}, nil, 2*time.Second)
	items := f.FetchAll(context.Background())
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	first := items[0]
	if first.Title != "Gold surges to record high" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Summary != "Gold futures climbed on safe-haven demand." {
		t.Errorf("summary = %q", first.Summary)
	}
	if first.Source != srv.URL {
		t.Errorf("source = %q, want the feed URL", first.Source)
	}
	if first.ContentType != "rss" {
		t.Errorf("content type = %q", first.ContentType)
	}
	if first.Published == nil {
		t.Fatal("expected a parsed publish time")
	}
	want := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	if !first.Published.Equal(want) {
		t.Errorf("published = %v, want %v", first.Published, want)
	}

	// Unparseable and missing pubDates leave Published nil; the analyzer
	// substitutes observation time downstream.
	if items[1].Published != nil {
		t.Errorf("published for bad pubDate = %v, want nil", items[1].Published)
	}
	if items[2].Published != nil {
		t.Errorf("published for missing pubDate = %v, want nil", items[2].Published)
	}
}

func TestFetchAllSkipsDeadFeeds(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer dead.Close()
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeed))
	}))
	defer live.Close()

	f := NewFetcher([]string{dead.URL, live.URL}, nil, 2*time.Second)
	items := f.FetchAll(context.Background())
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3 from the live feed only", len(items))
	}
}

func TestFetchAllMalformedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL}, nil, 2*time.Second)
	if items := f.FetchAll(context.Background()); len(items) != 0 {
		t.Fatalf("items = %d, want 0 for malformed feed", len(items))
	}
}

func TestParsePubDate(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"Mon, 02 Mar 2026 09:30:00 -0500", true, time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)},
		{"Mon, 02 Mar 2026 09:30:00 UTC", true, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
		{"2026-03-02T09:30:00Z", true, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
		{"2026-03-02 09:30:00", true, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"tomorrow-ish", false, time.Time{}},
	}
	for _, tt := range tests {
		got, ok := parsePubDate(tt.raw)
		if ok != tt.ok {
			t.Errorf("parsePubDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parsePubDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
