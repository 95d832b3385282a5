package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// freqMinutes maps an update-frequency token to a cadence in minutes.
var freqMinutes = map[string]int{
	"5m":  5,
	"15m": 15,
	"1h":  60,
	"4h":  240,
	"1d":  1440,
}

// CadenceMinutes returns the scheduling cadence for an update-frequency
// token, defaulting to hourly for unknown tokens.
func CadenceMinutes(token string) int {
	if m, ok := freqMinutes[token]; ok {
		return m
	}
	return 60
}

// BinDuration returns the resampling bin width for an update-frequency token.
func BinDuration(token string) time.Duration {
	return time.Duration(CadenceMinutes(token)) * time.Minute
}

// SessionWindow is one active slice of the instrument's trading session:
// a set of weekdays plus an [OpenHour, CloseHour) range in the session
// timezone.
type SessionWindow struct {
	Days      []string `yaml:"days"`
	OpenHour  int      `yaml:"open_hour"`
	CloseHour int      `yaml:"close_hour"`
}

type ScrapeSource struct {
	Name             string `yaml:"name"`
	URL              string `yaml:"url"`
	HeadlineSelector string `yaml:"headline_selector"`
}

type Config struct {
	Symbol          string `yaml:"symbol"`
	UpdateFrequency string `yaml:"update_frequency"`

	Sources struct {
		RSS            []string       `yaml:"rss"`
		Scraping       []ScrapeSource `yaml:"scraping"`
		TimeoutSeconds int            `yaml:"timeout_seconds"`
	} `yaml:"sources"`

	Analyzer struct {
		MaxTextLength int     `yaml:"max_text_length"`
		TopKeywords   int     `yaml:"top_keywords"`
		LexiconWeight float64 `yaml:"lexicon_weight"`
		ModelWeight   float64 `yaml:"model_weight"`
	} `yaml:"analyzer"`

	Trend struct {
		ShortWindow  int `yaml:"short_window"`
		MediumWindow int `yaml:"medium_window"`
		LongWindow   int `yaml:"long_window"`
	} `yaml:"trend"`

	Thresholds struct {
		Buy        float64 `yaml:"buy"`
		Sell       float64 `yaml:"sell"`
		Confidence float64 `yaml:"confidence"`
	} `yaml:"thresholds"`

	Model struct {
		Provider       string `yaml:"provider"` // "REMOTE" or "NOOP"
		Endpoint       string `yaml:"endpoint"`
		Name           string `yaml:"name"`
		APIKeyEnv      string `yaml:"api_key_env"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"model"`

	PriceFeed struct {
		Provider string `yaml:"provider"` // "YAHOO" or "KITE"
		Exchange string `yaml:"exchange"`
	} `yaml:"price_feed"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Session struct {
		Timezone string          `yaml:"timezone"`
		Windows  []SessionWindow `yaml:"windows"`
	} `yaml:"session"`
}

func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if _, ok := freqMinutes[c.UpdateFrequency]; !ok {
		return fmt.Errorf("invalid update_frequency '%s': must be one of 5m, 15m, 1h, 4h, 1d", c.UpdateFrequency)
	}
	if c.Trend.ShortWindow <= 0 || c.Trend.MediumWindow <= c.Trend.ShortWindow || c.Trend.LongWindow <= c.Trend.MediumWindow {
		return fmt.Errorf("trend windows must be ascending, got %d/%d/%d",
			c.Trend.ShortWindow, c.Trend.MediumWindow, c.Trend.LongWindow)
	}
	if c.Thresholds.Buy <= c.Thresholds.Sell {
		return fmt.Errorf("thresholds.buy (%.2f) must be above thresholds.sell (%.2f)",
			c.Thresholds.Buy, c.Thresholds.Sell)
	}
	if c.Thresholds.Confidence < 0 || c.Thresholds.Confidence > 1 {
		return fmt.Errorf("thresholds.confidence must be in [0,1], got %.2f", c.Thresholds.Confidence)
	}
	if c.Analyzer.LexiconWeight < 0 || c.Analyzer.ModelWeight < 0 {
		return fmt.Errorf("analyzer weights must be non-negative")
	}
	if c.Model.Provider != "REMOTE" && c.Model.Provider != "NOOP" {
		return fmt.Errorf("model.provider must be 'REMOTE' or 'NOOP', got '%s'", c.Model.Provider)
	}
	if c.PriceFeed.Provider != "YAHOO" && c.PriceFeed.Provider != "KITE" {
		return fmt.Errorf("price_feed.provider must be 'YAHOO' or 'KITE', got '%s'", c.PriceFeed.Provider)
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("invalid session.timezone '%s': %w", c.Session.Timezone, err)
	}
	for _, w := range c.Session.Windows {
		if w.OpenHour < 0 || w.CloseHour > 24 || w.OpenHour >= w.CloseHour {
			return fmt.Errorf("invalid session window hours %d-%d", w.OpenHour, w.CloseHour)
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.UpdateFrequency == "" {
		c.UpdateFrequency = "1h"
	}
	if c.Sources.TimeoutSeconds == 0 {
		c.Sources.TimeoutSeconds = 10
	}
	if c.Analyzer.MaxTextLength == 0 {
		c.Analyzer.MaxTextLength = 100
	}
	if c.Analyzer.TopKeywords == 0 {
		c.Analyzer.TopKeywords = 5
	}
	if c.Analyzer.LexiconWeight == 0 && c.Analyzer.ModelWeight == 0 {
		c.Analyzer.LexiconWeight = 0.6
		c.Analyzer.ModelWeight = 0.4
	}
	if c.Trend.ShortWindow == 0 {
		c.Trend.ShortWindow = 3
	}
	if c.Trend.MediumWindow == 0 {
		c.Trend.MediumWindow = 7
	}
	if c.Trend.LongWindow == 0 {
		c.Trend.LongWindow = 14
	}
	if c.Thresholds.Buy == 0 && c.Thresholds.Sell == 0 {
		c.Thresholds.Buy = 0.5
		c.Thresholds.Sell = -0.5
	}
	if c.Thresholds.Confidence == 0 {
		c.Thresholds.Confidence = 0.7
	}
	if c.Model.Provider == "" {
		c.Model.Provider = "NOOP"
	}
	if c.Model.TimeoutSeconds == 0 {
		c.Model.TimeoutSeconds = 30
	}
	if c.PriceFeed.Provider == "" {
		c.PriceFeed.Provider = "YAHOO"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/trademood"
	}
	if c.Session.Timezone == "" {
		c.Session.Timezone = "America/New_York"
	}
	if len(c.Session.Windows) == 0 {
		// COMEX-style session: weekday daytime plus the Sunday evening open.
		c.Session.Windows = []SessionWindow{
			{Days: []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, OpenHour: 0, CloseHour: 17},
			{Days: []string{"Sun"}, OpenHour: 18, CloseHour: 24},
		}
	}
}

// SessionLocation returns the configured session timezone. Validate has
// already checked it loads.
func (c *Config) SessionLocation() *time.Location {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsActiveSession reports whether t falls inside any configured session
// window, evaluated in the session timezone.
func (c *Config) IsActiveSession(t time.Time) bool {
	local := t.In(c.SessionLocation())
	day := local.Weekday().String()[:3]
	hour := local.Hour()
	for _, w := range c.Session.Windows {
		for _, d := range w.Days {
			if d == day && hour >= w.OpenHour && hour < w.CloseHour {
				return true
			}
		}
	}
	return false
}
