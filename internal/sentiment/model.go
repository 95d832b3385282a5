package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"trademood/internal/interfaces"
	"trademood/internal/types"
)

// RemoteScorer invokes a hosted sentiment classification model over HTTP.
// The endpoint receives the cleaned text and responds with a label and a
// confidence; the model itself is opaque, pre-trained and stateless.
type RemoteScorer struct {
	endpoint  string
	model     string
	apiKeyEnv string
	client    *http.Client
}

var _ interfaces.Scorer = (*RemoteScorer)(nil)

// NewRemoteScorer creates a scorer for an inference endpoint. The API key is
// read from the environment variable named by apiKeyEnv on each call, so key
// rotation does not need a restart.
func NewRemoteScorer(endpoint, model, apiKeyEnv string, timeout time.Duration) *RemoteScorer {
	return &RemoteScorer{
		endpoint:  endpoint,
		model:     model,
		apiKeyEnv: apiKeyEnv,
		client:    &http.Client{Timeout: timeout},
	}
}

func (s *RemoteScorer) Score(ctx context.Context, text string) (types.ScoreResult, error) {
	if s.endpoint == "" {
		return types.ScoreResult{}, errors.New("model endpoint not configured")
	}

	body := map[string]any{
		"model": s.model,
		"text":  text,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(bb))
	if err != nil {
		return types.ScoreResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKeyEnv != "" {
		if key := os.Getenv(s.apiKeyEnv); key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return types.ScoreResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.ScoreResult{}, fmt.Errorf("model endpoint http %d", resp.StatusCode)
	}

	var r struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.ScoreResult{}, fmt.Errorf("invalid model response: %w", err)
	}

	if r.Score < 0 || r.Score > 1 {
		return types.ScoreResult{}, fmt.Errorf("model confidence %.3f out of range", r.Score)
	}

	result := types.ScoreResult{
		Label:      strings.ToLower(r.Label),
		Confidence: r.Score,
	}
	result.Compound = result.Signed()
	return result, nil
}

// NoopScorer always reports neutral. Used when no model endpoint is
// configured, leaving the lexicon scorer as the only sentiment contribution.
type NoopScorer struct{}

var _ interfaces.Scorer = (*NoopScorer)(nil)

func NewNoopScorer() *NoopScorer { return &NoopScorer{} }

func (s *NoopScorer) Score(ctx context.Context, text string) (types.ScoreResult, error) {
	return types.ScoreResult{Label: "neutral"}, nil
}
