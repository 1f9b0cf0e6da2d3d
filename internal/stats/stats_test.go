package stats

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/model"
)

func TestWinRate(t *testing.T) {
	if WinRate(0, 0) != 0 {
		t.Fatalf("expected 0 for no plays")
	}
	if WinRate(3, 4) != 75 {
		t.Fatalf("expected 75")
	}
	if WinRate(1, 3) != 33 {
		t.Fatalf("expected 33")
	}
}

func TestSummarize(t *testing.T) {
	state := model.NewStatsState()
	state = Apply(state, result("clock", model.Hard, true, 100, 10000, 0))
	state = Apply(state, result("clock", model.Hard, true, 100, 20000, 1))
	state = Apply(state, result("pairs", model.Easy, false, 50, 30000, 2))
	state = Apply(state, result("simon", model.Medium, true, 90, 40000, 3))

	s := Summarize(state)
	if s.Played != 4 || s.Wins != 3 || s.WinRate != 75 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.AvgTime != 25*time.Second {
		t.Fatalf("expected 25s average, got %s", s.AvgTime)
	}
	if s.BestStreak != 2 || s.HardShare != 50 || s.UniqueGames != 3 {
		t.Fatalf("unexpected streak/hard/unique %+v", s)
	}
	if s.MeanAccuracy != 85 {
		t.Fatalf("expected mean accuracy 85, got %d", s.MeanAccuracy)
	}
	if len(s.TopGames) != 3 || s.TopGames[0].GameID != "clock" || s.TopGames[0].Streak != 2 {
		t.Fatalf("unexpected top games %+v", s.TopGames)
	}
	rates := map[games.Category]CategoryRate{}
	for _, r := range s.Categories {
		rates[r.Category] = r
	}
	if mem := rates[games.CategoryMemory]; mem.Played != 2 || mem.WinRate != 50 {
		t.Fatalf("unexpected memory rate %+v", mem)
	}
	if tm := rates[games.CategoryTime]; tm.Played != 2 || tm.WinRate != 100 {
		t.Fatalf("unexpected time rate %+v", tm)
	}
}

func TestTopGamesLimit(t *testing.T) {
	state := model.NewStatsState()
	for i, id := range games.IDs() {
		for j := 0; j <= i; j++ {
			state = Apply(state, result(id, model.Easy, true, 100, 1000, i*10+j))
		}
	}
	top := TopGames(state, TopGamesLimit)
	if len(top) != TopGamesLimit {
		t.Fatalf("expected %d games, got %d", TopGamesLimit, len(top))
	}
	if top[0].GameID != games.IDRoutine || top[0].Played != 8 {
		t.Fatalf("unexpected leader %+v", top[0])
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summarize(model.NewStatsState()), base); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No games played") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}

	buf.Reset()
	state := Apply(model.NewStatsState(), result("clock", model.Easy, true, 100, 12000, 0))
	if err := RenderSummary(&buf, Summarize(state), base.Add(3*time.Minute)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Games played: 1", "Wins: 1 (100%)", "Avg time per game: 12.0s", "3 minutes ago"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderGames(t *testing.T) {
	state := Apply(model.NewStatsState(), result("pairs", model.Easy, true, 100, 12345, 0))
	var buf bytes.Buffer
	title := func(id string) string { return strings.ToUpper(id) }
	if err := RenderGames(&buf, TopGames(state, 5), title); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1st") || !strings.Contains(out, "PAIRS") || !strings.Contains(out, "12.3s") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestMovingAverageAndSparkline(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moving average %v, want %v", got, want)
		}
	}
	if s := Sparkline([]float64{0, 50, 100}); s != " +@" {
		t.Fatalf("unexpected sparkline %q", s)
	}
	if s := Sparkline([]float64{5, 5}); s != "++" {
		t.Fatalf("unexpected flat sparkline %q", s)
	}
}

type fakeJournal struct {
	results []model.GameResult
	err     error
}

func (f fakeJournal) ListResults(_ context.Context, gameID string, last int) ([]model.GameResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.GameResult
	for _, r := range f.results {
		if gameID == "" || r.GameID == gameID {
			out = append(out, r)
		}
	}
	if last > 0 && len(out) > last {
		out = out[len(out)-last:]
	}
	return out, nil
}

func TestBuildReport(t *testing.T) {
	j := fakeJournal{results: []model.GameResult{
		result("clock", model.Easy, true, 100, 4000, 0),
		result("pairs", model.Easy, true, 50, 2000, 1),
		result("clock", model.Easy, false, 0, 6000, 2),
		result("clock", model.Easy, true, 100, 8000, 3),
	}}
	report, err := BuildReport(context.Background(), j, "clock", 2, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Accuracy[1] != 50 || report.Seconds[1] != 7 {
		t.Fatalf("unexpected curves %+v %+v", report.Accuracy, report.Seconds)
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Curves over 2 games") {
		t.Fatalf("unexpected curves output %q", buf.String())
	}

	_, err = BuildReport(context.Background(), fakeJournal{err: errors.New("boom")}, "", 0, 1)
	if err == nil {
		t.Fatalf("expected journal error")
	}
}
