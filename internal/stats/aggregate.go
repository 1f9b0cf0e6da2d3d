package stats

import (
	"slices"

	"github.com/verte-zerg/senobi/internal/model"
)

// RecentCapacity bounds StatsState.RecentResults.
const RecentCapacity = 30

// Apply folds a result into state and returns the new state. The input state
// is never modified.
func Apply(state model.StatsState, r model.GameResult) model.StatsState {
	next := Clone(state)

	next.TotalPlayed++
	if r.Won {
		next.TotalWins++
	}
	if r.TimeMs > 0 {
		next.TotalTimeMs += r.TimeMs
	}
	next.UniqueGameIDs = addUnique(next.UniqueGameIDs, r.GameID)
	if r.Won && r.Difficulty == model.Hard {
		next.HardWins = addUnique(next.HardWins, r.GameID)
	}
	if r.Won {
		next.WinStreakByGame[r.GameID]++
	} else {
		next.WinStreakByGame[r.GameID] = 0
	}

	agg, ok := next.Games[r.GameID]
	if !ok {
		agg = model.NewGameAggregate(r.GameID)
	}
	agg.Played++
	if r.Won {
		agg.Wins++
	}
	agg.TotalAccuracy += r.Accuracy
	count := agg.ByDifficulty[r.Difficulty]
	count.Played++
	if r.Won {
		count.Wins++
	}
	agg.ByDifficulty[r.Difficulty] = count
	if r.TimeMs > 0 && (agg.BestTimeMs == nil || r.TimeMs < *agg.BestTimeMs) {
		best := r.TimeMs
		agg.BestTimeMs = &best
	}
	next.Games[r.GameID] = agg

	recent := make([]model.GameResult, 0, min(len(next.RecentResults)+1, RecentCapacity))
	recent = append(recent, r)
	recent = append(recent, next.RecentResults...)
	if len(recent) > RecentCapacity {
		recent = recent[:RecentCapacity]
	}
	next.RecentResults = recent
	return next
}

// Reset returns the empty state.
func Reset() model.StatsState {
	return model.NewStatsState()
}

// Clone returns a deep copy of state. Nil collections come back empty.
func Clone(state model.StatsState) model.StatsState {
	out := model.NewStatsState()
	out.TotalPlayed = state.TotalPlayed
	out.TotalWins = state.TotalWins
	out.TotalTimeMs = state.TotalTimeMs
	out.UniqueGameIDs = append(out.UniqueGameIDs, state.UniqueGameIDs...)
	out.HardWins = append(out.HardWins, state.HardWins...)
	for id, streak := range state.WinStreakByGame {
		out.WinStreakByGame[id] = streak
	}
	for id, agg := range state.Games {
		out.Games[id] = cloneAggregate(agg)
	}
	out.RecentResults = append(out.RecentResults, state.RecentResults...)
	return out
}

func cloneAggregate(agg model.GameAggregate) model.GameAggregate {
	out := agg
	out.ByDifficulty = make(map[model.Difficulty]model.DifficultyCount, len(agg.ByDifficulty))
	for d, c := range agg.ByDifficulty {
		out.ByDifficulty[d] = c
	}
	if agg.BestTimeMs != nil {
		best := *agg.BestTimeMs
		out.BestTimeMs = &best
	}
	return out
}

func addUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

// BestStreak returns the highest current win streak across games.
func BestStreak(state model.StatsState) int {
	best := 0
	for _, streak := range state.WinStreakByGame {
		best = max(best, streak)
	}
	return best
}

// TotalAccuracy sums the accuracy of every recorded result.
func TotalAccuracy(state model.StatsState) int {
	total := 0
	for _, agg := range state.Games {
		total += agg.TotalAccuracy
	}
	return total
}

// MeanAccuracy returns the average accuracy over every recorded result,
// rounded for display.
func MeanAccuracy(state model.StatsState) int {
	if state.TotalPlayed == 0 {
		return 0
	}
	return percentOf(TotalAccuracy(state), state.TotalPlayed*100)
}
