package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verte-zerg/senobi/internal/achievements"
	"github.com/verte-zerg/senobi/internal/adaptive"
	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/stats"
)

var start = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return start }

func res(game string, d model.Difficulty, won bool, acc int, i int) model.GameResult {
	return model.GameResult{
		GameID:     game,
		Difficulty: d,
		Score:      acc / 25,
		Accuracy:   acc,
		TimeMs:     int64(10000 + i*100),
		Attempts:   4,
		Won:        won,
		PlayedAt:   start.Add(time.Duration(i) * time.Minute),
	}
}

type brokenGateway struct{}

func (brokenGateway) Load(context.Context, string) ([]byte, error) { return nil, errors.New("quota exceeded") }

func (brokenGateway) Save(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func (brokenGateway) Remove(context.Context, string) error { return errors.New("quota exceeded") }

type memJournal struct {
	results []model.GameResult
	cleared int
}

func (j *memJournal) AppendResult(_ context.Context, r model.GameResult) error {
	j.results = append(j.results, r)
	return nil
}

func (j *memJournal) ClearResults(context.Context) error {
	j.results = nil
	j.cleared++
	return nil
}

func TestGetFallsBack(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()
	logger := zap.NewNop()

	assert.Equal(t, 7, Get(ctx, gw, "missing", 7, logger))

	require.NoError(t, gw.Save(ctx, "bad", []byte("{not json")))
	got := Get(ctx, gw, "bad", model.NewStatsState(), logger)
	assert.Equal(t, model.NewStatsState(), got)

	assert.Equal(t, "fallback", Get(ctx, brokenGateway{}, "any", "fallback", logger))

	Set(ctx, gw, "n", 42, logger)
	assert.Equal(t, 42, Get(ctx, gw, "n", 0, logger))
	Remove(ctx, gw, "n", logger)
	assert.Equal(t, 0, Get(ctx, gw, "n", 0, logger))

	Set(ctx, brokenGateway{}, "n", 1, logger)
	Remove(ctx, brokenGateway{}, "n", logger)
}

func TestPairsScenario(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(NewMemoryGateway(), Options{Now: fixedNow})

	for i := 1; i <= 5; i++ {
		u := p.Save(ctx, res("pairs", model.Easy, true, 100, i))
		if i < 3 {
			assert.False(t, achievements.IsUnlocked(u.Unlocked, achievements.Streak3))
		} else {
			assert.True(t, achievements.IsUnlocked(u.Unlocked, achievements.Streak3), "round %d", i)
		}
	}
	state := p.Stats(ctx)
	assert.Equal(t, 5, state.Games["pairs"].Played)
	assert.Equal(t, 5, state.Games["pairs"].Wins)
	assert.Equal(t, 5, state.WinStreakByGame["pairs"])
}

func TestSuggestionScenarios(t *testing.T) {
	ctx := context.Background()

	p := NewPipeline(NewMemoryGateway(), Options{Now: fixedNow})
	var u Update
	for i := 0; i < 3; i++ {
		u = p.Save(ctx, res("clock", model.Medium, false, 50, i))
		assert.Equal(t, adaptive.None, u.Suggestion, "only %d samples", i+1)
	}
	u = p.Save(ctx, res("clock", model.Medium, false, 50, 3))
	assert.Equal(t, adaptive.Lower, u.Suggestion)

	p = NewPipeline(NewMemoryGateway(), Options{Now: fixedNow})
	for i := 0; i < 4; i++ {
		u = p.Save(ctx, res("simon", model.Medium, true, 85, i))
	}
	assert.Equal(t, adaptive.Raise, u.Suggestion)

	u = p.Save(ctx, res("clock", model.Medium, true, 100, 10))
	assert.Equal(t, adaptive.None, u.Suggestion, "windows are per game")
}

func TestResetKeepsAchievements(t *testing.T) {
	ctx := context.Background()
	journal := &memJournal{}
	p := NewPipeline(NewMemoryGateway(), Options{Now: fixedNow, Journal: journal})
	for i := 0; i < 4; i++ {
		p.Save(ctx, res("routine", model.Hard, true, 100, i))
	}
	before := p.Achievements(ctx)
	require.NotEmpty(t, before)
	require.Len(t, journal.results, 4)

	empty := p.ResetStats(ctx)
	assert.Equal(t, model.NewStatsState(), empty)
	assert.Equal(t, stats.Reset(), p.Stats(ctx))
	assert.Equal(t, before, p.Achievements(ctx))
	assert.Equal(t, 1, journal.cleared)

	u := p.Save(ctx, res("routine", model.Hard, true, 100, 9))
	assert.Equal(t, adaptive.None, u.Suggestion, "suggestion windows are cleared too")
	assert.Equal(t, before, u.Unlocked)
}

func TestSaveSurvivesBrokenStorage(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(brokenGateway{}, Options{Now: fixedNow})
	u := p.Save(ctx, res("stroop", model.Easy, true, 90, 0))
	assert.Equal(t, 1, u.Stats.TotalPlayed)
	assert.True(t, achievements.IsUnlocked(u.Unlocked, achievements.FirstGame))
	assert.Equal(t, model.NewStatsState(), p.Stats(ctx))
}

func TestCorruptStateIsReplaced(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()
	require.NoError(t, gw.Save(ctx, KeyStats, []byte(`"garbage"`)))
	require.NoError(t, gw.Save(ctx, KeyAchievements, []byte(`null`)))
	require.NoError(t, gw.Save(ctx, KeyPerformance, []byte(`{]`)))

	p := NewPipeline(gw, Options{Now: fixedNow})
	u := p.Save(ctx, res("shapes", model.Easy, true, 100, 0))
	assert.Equal(t, 1, u.Stats.TotalPlayed)
	assert.Len(t, u.Unlocked, 1)
}

func TestSaveIsSerialized(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(NewMemoryGateway(), Options{Now: fixedNow})
	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			p.Save(ctx, res("patterns", model.Easy, true, 100, i))
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}
	state := p.Stats(ctx)
	assert.Equal(t, 20, state.TotalPlayed)
	assert.Equal(t, 20, state.WinStreakByGame["patterns"])
}
