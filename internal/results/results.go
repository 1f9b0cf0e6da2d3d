// Package results turns a finished round into a result record.
package results

import (
	"math"

	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/round"
)

// AccuracyPercent returns round(100*score/max(attempts,1)) clamped to [0,100].
func AccuracyPercent(score, attempts int) int {
	if attempts < 1 {
		attempts = 1
	}
	v := int(math.Round(float64(score) / float64(attempts) * 100))
	return clamp(v)
}

// Record builds the result of a completed round.
func Record(c round.Closure) model.GameResult {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	accuracy := AccuracyPercent(c.Score, attempts)
	if c.ExplicitAccuracy {
		accuracy = clamp(c.Accuracy)
	}
	elapsed := c.EndedAt.Sub(c.StartedAt).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return model.GameResult{
		GameID:     c.GameID,
		Difficulty: c.Difficulty,
		Score:      c.Score,
		Accuracy:   accuracy,
		TimeMs:     elapsed,
		Attempts:   attempts,
		Won:        c.Won,
		PlayedAt:   c.EndedAt,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
