package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/senobi/internal/achievements"
	"github.com/verte-zerg/senobi/internal/adaptive"
	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/stats"
)

// Performance holds the newest-first suggestion window of each game.
type Performance map[string][]model.GameResult

// Journal appends every recorded result to a history.
type Journal interface {
	AppendResult(ctx context.Context, r model.GameResult) error
	ClearResults(ctx context.Context) error
}

// Update is what the pipeline returns for one result.
type Update struct {
	Result     model.GameResult
	Stats      model.StatsState
	Unlocked   []model.UnlockedAchievement
	Fresh      []achievements.Definition
	Suggestion adaptive.Suggestion
}

// Options configures a Pipeline.
type Options struct {
	Journal Journal
	Logger  *zap.Logger
	Now     func() time.Time
}

// Pipeline folds results into the session state. Save calls are serialized,
// so each result observes the state left by the previous one.
type Pipeline struct {
	mu      sync.Mutex
	gw      Gateway
	journal Journal
	logger  *zap.Logger
	now     func() time.Time
}

// NewPipeline returns a Pipeline over gw.
func NewPipeline(gw Gateway, opts Options) *Pipeline {
	p := &Pipeline{gw: gw, journal: opts.Journal, logger: opts.Logger, now: opts.Now}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Save aggregates r, evaluates achievements, computes the suggestion and
// persists the new state, in that order.
func (p *Pipeline) Save(ctx context.Context, r model.GameResult) Update {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := stats.Apply(p.loadStats(ctx), r)
	unlocked, fresh := achievements.Evaluate(state, p.loadAchievements(ctx), p.now())

	perf := Get(ctx, p.gw, KeyPerformance, Performance{}, p.logger)
	if perf == nil {
		perf = Performance{}
	}
	perf[r.GameID] = adaptive.Push(perf[r.GameID], r)
	suggestion := adaptive.Suggest(perf[r.GameID])

	Set(ctx, p.gw, KeyStats, state, p.logger)
	Set(ctx, p.gw, KeyAchievements, unlocked, p.logger)
	Set(ctx, p.gw, KeyPerformance, perf, p.logger)
	if p.journal != nil {
		if err := p.journal.AppendResult(ctx, r); err != nil {
			p.logger.Warn("failed to journal result", zap.Error(err))
		}
	}

	for _, a := range fresh {
		p.logger.Info("achievement unlocked", zap.String("id", a.ID))
	}
	p.logger.Debug("result saved",
		zap.String("game", r.GameID),
		zap.Bool("won", r.Won),
		zap.Int("accuracy", r.Accuracy),
		zap.Stringer("suggestion", suggestion),
	)
	return Update{Result: r, Stats: state, Unlocked: unlocked, Fresh: fresh, Suggestion: suggestion}
}

// Stats returns the persisted statistics, or the empty state.
func (p *Pipeline) Stats(ctx context.Context) model.StatsState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadStats(ctx)
}

// Achievements returns the unlocked achievements.
func (p *Pipeline) Achievements(ctx context.Context) []model.UnlockedAchievement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadAchievements(ctx)
}

// ResetStats clears statistics, suggestion windows and the journal.
// Achievements are kept.
func (p *Pipeline) ResetStats(ctx context.Context) model.StatsState {
	p.mu.Lock()
	defer p.mu.Unlock()

	empty := stats.Reset()
	Set(ctx, p.gw, KeyStats, empty, p.logger)
	Remove(ctx, p.gw, KeyPerformance, p.logger)
	if p.journal != nil {
		if err := p.journal.ClearResults(ctx); err != nil {
			p.logger.Warn("failed to clear journal", zap.Error(err))
		}
	}
	p.logger.Info("stats reset")
	return empty
}

func (p *Pipeline) loadStats(ctx context.Context) model.StatsState {
	return stats.Clone(Get(ctx, p.gw, KeyStats, model.NewStatsState(), p.logger))
}

func (p *Pipeline) loadAchievements(ctx context.Context) []model.UnlockedAchievement {
	unlocked := Get(ctx, p.gw, KeyAchievements, []model.UnlockedAchievement{}, p.logger)
	if unlocked == nil {
		return []model.UnlockedAchievement{}
	}
	return unlocked
}
