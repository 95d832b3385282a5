package interfaces

import (
	"context"

	"trademood/internal/types"
)

// Scorer scores a piece of text for sentiment. Implementations are stateless
// pure functions over the text: the lexicon scorer and the learned-model
// scorer both sit behind this interface so the analyzer's combination logic
// never cares which is which.
type Scorer interface {
	Score(ctx context.Context, text string) (types.ScoreResult, error)
}
