// Package achievements evaluates the unlockable achievement table against
// session statistics.
package achievements

import (
	"slices"
	"time"

	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/stats"
)

// Achievement IDs.
const (
	FirstGame    = "first-game"
	Streak3      = "streak-3"
	Explorer     = "explorer"
	Mastery      = "mastery"
	SharpMind    = "sharp-mind"
	QuickThinker = "quick-thinker"
)

// Definition describes a single unlockable goal.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	// Condition reports whether the achievement is earned by the given state.
	Condition func(model.StatsState) bool
}

const (
	quickWinLimitMs = 30_000
	quickWinsNeeded = 10
	sharpMinPlays   = 20
	sharpAccuracy   = 90
)

var registry = []Definition{
	{
		ID: FirstGame, Title: "First game", Icon: "🎯",
		Description: "Play one game.",
		Condition:   func(s model.StatsState) bool { return s.TotalPlayed >= 1 },
	},
	{
		ID: Streak3, Title: "On a roll", Icon: "🔥",
		Description: "Win 3 games of the same kind in a row.",
		Condition:   func(s model.StatsState) bool { return stats.BestStreak(s) >= 3 },
	},
	{
		ID: Explorer, Title: "Explorer", Icon: "🧭",
		Description: "Try 5 different games.",
		Condition:   func(s model.StatsState) bool { return len(s.UniqueGameIDs) >= 5 },
	},
	{
		ID: Mastery, Title: "Mastery", Icon: "🏆",
		Description: "Win on hard in 3 different games.",
		Condition:   func(s model.StatsState) bool { return len(s.HardWins) >= 3 },
	},
	{
		ID: SharpMind, Title: "Sharp mind", Icon: "🧠",
		Description: "Keep a mean accuracy of 90% over at least 20 games.",
		Condition: func(s model.StatsState) bool {
			// Unrounded: a mean of 89.5 must not count.
			return s.TotalPlayed >= sharpMinPlays && stats.TotalAccuracy(s) >= sharpAccuracy*s.TotalPlayed
		},
	},
	{
		ID: QuickThinker, Title: "Quick thinker", Icon: "⚡",
		Description: "Win 10 recent games in 30 seconds or less.",
		Condition: func(s model.StatsState) bool {
			n := 0
			for _, r := range s.RecentResults {
				if r.Won && r.TimeMs <= quickWinLimitMs {
					n++
				}
			}
			return n >= quickWinsNeeded
		},
	},
}

// Definitions returns a copy of the achievement table in display order.
func Definitions() []Definition {
	return slices.Clone(registry)
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	for _, d := range registry {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// IsUnlocked reports whether id appears in unlocked.
func IsUnlocked(unlocked []model.UnlockedAchievement, id string) bool {
	return slices.ContainsFunc(unlocked, func(u model.UnlockedAchievement) bool { return u.ID == id })
}

// Evaluate appends an entry stamped now for every achievement whose condition
// holds and that is not yet unlocked. Existing entries are kept untouched, so
// repeated evaluation never duplicates or removes anything. fresh lists the
// achievements unlocked by this call.
func Evaluate(state model.StatsState, unlocked []model.UnlockedAchievement, now time.Time) (next []model.UnlockedAchievement, fresh []Definition) {
	next = make([]model.UnlockedAchievement, 0, len(unlocked)+1)
	next = append(next, unlocked...)
	for _, d := range registry {
		if IsUnlocked(next, d.ID) || !d.Condition(state) {
			continue
		}
		next = append(next, model.UnlockedAchievement{ID: d.ID, UnlockedAt: now})
		fresh = append(fresh, d)
	}
	return next, fresh
}
