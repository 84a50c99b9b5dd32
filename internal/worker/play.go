package worker

import (
	"context"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/hashing"
)

// redSeedMix decorrelates Red's agent from Black's for the same game seed.
const redSeedMix = 0x5DEECE66D

// AgentSeeds returns the seeds of Black's and Red's random agents for a game
// seed.
func AgentSeeds(seed int64) (black, red int64) {
	return seed, seed ^ redSeedMix
}

// RandomGameFunc returns a ProcessFunc that plays one random-vs-random game
// per work item with fresh state. The pool has no cancellation of its own,
// so ctx is checked between turns. When finals is non-nil every final
// position is recorded in it and repeats are flagged as Duplicate.
func RandomGameFunc(ctx context.Context, cfg config.GameConfig, finals *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Index: item.Index}

		g, err := engine.NewGame(cfg)
		if err != nil {
			result.Error = err
			return result
		}
		bs, rs := AgentSeeds(item.Seed)
		black, red := engine.NewRandomStrategy(bs), engine.NewRandomStrategy(rs)

		result.Outcome, result.Error = engine.Play(ctx, g, black, red)
		result.Signature = hashing.Signature(g)
			if result.Error == nil && finals != nil {
			result.Duplicate = finals.CheckAndAddSignature(result.Signature)
		}
		return result
	}
}
