package stats

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/senobi/internal/model"
)

var base = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func result(game string, d model.Difficulty, won bool, acc int, timeMs int64, i int) model.GameResult {
	return model.GameResult{
		GameID:     game,
		Difficulty: d,
		Score:      acc / 10,
		Accuracy:   acc,
		TimeMs:     timeMs,
		Attempts:   10,
		Won:        won,
		PlayedAt:   base.Add(time.Duration(i) * time.Minute),
	}
}

func TestApplyInvariantsOverRandomSequences(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	ids := []string{"clock", "pairs", "simon", "routine"}
	state := model.NewStatsState()
	streaks := map[string]int{}
	best := map[string]int64{}
	for i := 0; i < 500; i++ {
		r := result(ids[rnd.Intn(len(ids))], model.Difficulties()[rnd.Intn(3)], rnd.Intn(2) == 0, rnd.Intn(101), int64(rnd.Intn(60000)), i)
		state = Apply(state, r)

		if state.TotalWins > state.TotalPlayed {
			t.Fatalf("totalWins %d > totalPlayed %d", state.TotalWins, state.TotalPlayed)
		}
		for id, agg := range state.Games {
			if agg.Wins > agg.Played {
				t.Fatalf("%s: wins %d > played %d", id, agg.Wins, agg.Played)
			}
		}
		if r.Won {
			streaks[r.GameID]++
		} else {
			streaks[r.GameID] = 0
		}
		if got := state.WinStreakByGame[r.GameID]; got != streaks[r.GameID] {
			t.Fatalf("streak for %s = %d, want %d", r.GameID, got, streaks[r.GameID])
		}
		if len(state.RecentResults) > RecentCapacity {
			t.Fatalf("recent results grew to %d", len(state.RecentResults))
		}
		if state.RecentResults[0] != r {
			t.Fatalf("newest result must come first")
		}
		for j := 1; j < len(state.RecentResults); j++ {
			if state.RecentResults[j-1].PlayedAt.Before(state.RecentResults[j].PlayedAt) {
				t.Fatalf("recent results not newest-first at %d", j)
			}
		}
		agg := state.Games[r.GameID]
		if agg.BestTimeMs != nil {
			prev, seen := best[r.GameID]
			if seen && *agg.BestTimeMs > prev {
				t.Fatalf("best time for %s increased from %d to %d", r.GameID, prev, *agg.BestTimeMs)
			}
			best[r.GameID] = *agg.BestTimeMs
		}
	}
	if state.TotalPlayed != 500 {
		t.Fatalf("expected 500 plays, got %d", state.TotalPlayed)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := Apply(model.NewStatsState(), result("clock", model.Hard, true, 100, 5000, 0))
	snapshot := Clone(before)
	_ = Apply(before, result("clock", model.Hard, false, 0, 1000, 1))
	if !reflect.DeepEqual(before, snapshot) {
		t.Fatalf("input state was mutated")
	}
}

func TestApplyBestTimeIgnoresZero(t *testing.T) {
	state := Apply(model.NewStatsState(), result("pairs", model.Easy, true, 100, 0, 0))
	if state.Games["pairs"].BestTimeMs != nil {
		t.Fatalf("zero time must not set a best time")
	}
	state = Apply(state, result("pairs", model.Easy, true, 100, 8000, 1))
	state = Apply(state, result("pairs", model.Easy, true, 100, 9000, 2))
	state = Apply(state, result("pairs", model.Easy, true, 100, 0, 3))
	if got := *state.Games["pairs"].BestTimeMs; got != 8000 {
		t.Fatalf("expected best time 8000, got %d", got)
	}
	state = Apply(state, result("pairs", model.Easy, true, 100, 7000, 4))
	if got := *state.Games["pairs"].BestTimeMs; got != 7000 {
		t.Fatalf("expected best time 7000, got %d", got)
	}
}

func TestApplyHardWinsAndDifficultyCounts(t *testing.T) {
	state := model.NewStatsState()
	state = Apply(state, result("simon", model.Hard, false, 40, 1000, 0))
	state = Apply(state, result("simon", model.Hard, true, 100, 1000, 1))
	state = Apply(state, result("simon", model.Hard, true, 100, 1000, 2))
	state = Apply(state, result("clock", model.Medium, true, 100, 1000, 3))

	if !reflect.DeepEqual(state.HardWins, []string{"simon"}) {
		t.Fatalf("unexpected hard wins %v", state.HardWins)
	}
	if !reflect.DeepEqual(state.UniqueGameIDs, []string{"simon", "clock"}) {
		t.Fatalf("unexpected unique ids %v", state.UniqueGameIDs)
	}
	hard := state.Games["simon"].ByDifficulty[model.Hard]
	if hard.Played != 3 || hard.Wins != 2 {
		t.Fatalf("unexpected hard counts %+v", hard)
	}
	if state.Games["simon"].TotalAccuracy != 240 {
		t.Fatalf("expected summed accuracy 240, got %d", state.Games["simon"].TotalAccuracy)
	}
}

func TestPairsWinningStreakScenario(t *testing.T) {
	state := model.NewStatsState()
	for i := 0; i < 5; i++ {
		state = Apply(state, result("pairs", model.Easy, true, 100, 20000, i))
	}
	agg := state.Games["pairs"]
	if agg.Played != 5 || agg.Wins != 5 || state.WinStreakByGame["pairs"] != 5 {
		t.Fatalf("unexpected aggregate %+v streak %d", agg, state.WinStreakByGame["pairs"])
	}
	state = Apply(state, result("pairs", model.Easy, false, 20, 20000, 5))
	if state.WinStreakByGame["pairs"] != 0 {
		t.Fatalf("loss must reset the streak")
	}
}

func TestResetMatchesEmptyState(t *testing.T) {
	if !reflect.DeepEqual(Reset(), model.NewStatsState()) {
		t.Fatalf("reset state differs from the empty state")
	}
	raw, err := json.Marshal(Reset())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.StatsState
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, model.NewStatsState()) {
		t.Fatalf("empty state does not survive a JSON round trip: %+v", decoded)
	}
}

func TestCloneNormalizesNil(t *testing.T) {
	got := Clone(model.StatsState{})
	if !reflect.DeepEqual(got, model.NewStatsState()) {
		t.Fatalf("expected normalized empty state, got %+v", got)
	}
}
