// Package stats folds round results into session statistics and renders
// them as text.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/model"
)

const sparkChars = " .:-=+*#%@"

// TopGamesLimit caps Summary.TopGames.
const TopGamesLimit = 5

// WinRate returns round(100*wins/played), or 0 when nothing was played.
func WinRate(wins, played int) int {
	return percentOf(wins, played)
}

func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// CategoryRate is the win rate of one game category over recent results.
type CategoryRate struct {
	Category games.Category
	Played   int
	Wins     int
	WinRate  int
}

// GameRow summarizes one game.
type GameRow struct {
	GameID      string
	Played      int
	Wins        int
	WinRate     int
	AvgAccuracy int
	BestTimeMs  *int64
	Streak      int
}

// Summary is the overview shown on the stats screen.
type Summary struct {
	Played       int
	Wins         int
	WinRate      int
	MeanAccuracy int
	AvgTime      time.Duration
	BestStreak   int
	HardShare    int
	UniqueGames  int
	Categories   []CategoryRate
	TopGames     []GameRow
	LastPlayedAt time.Time
}

// Summarize derives the overview from state.
func Summarize(state model.StatsState) Summary {
	s := Summary{
		Played:       state.TotalPlayed,
		Wins:         state.TotalWins,
		WinRate:      WinRate(state.TotalWins, state.TotalPlayed),
		MeanAccuracy: MeanAccuracy(state),
		BestStreak:   BestStreak(state),
		UniqueGames:  len(state.UniqueGameIDs),
	}
	if state.TotalPlayed > 0 {
		s.AvgTime = time.Duration(state.TotalTimeMs/int64(state.TotalPlayed)) * time.Millisecond
	}
	hard := 0
	for _, agg := range state.Games {
		hard += agg.ByDifficulty[model.Hard].Played
	}
	s.HardShare = percentOf(hard, state.TotalPlayed)
	if len(state.RecentResults) > 0 {
		s.LastPlayedAt = state.RecentResults[0].PlayedAt
	}
	s.Categories = categoryRates(state.RecentResults)
	s.TopGames = TopGames(state, TopGamesLimit)
	return s
}

func categoryRates(recent []model.GameResult) []CategoryRate {
	byCat := map[games.Category]*CategoryRate{}
	for _, r := range recent {
		cat := games.CategoryOf(r.GameID)
		if cat == "" {
			continue
		}
		rate, ok := byCat[cat]
		if !ok {
			rate = &CategoryRate{Category: cat}
			byCat[cat] = rate
		}
		rate.Played++
		if r.Won {
			rate.Wins++
		}
	}
	out := make([]CategoryRate, 0, len(byCat))
	for _, rate := range byCat {
		rate.WinRate = WinRate(rate.Wins, rate.Played)
		out = append(out, *rate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TopGames returns up to n games ordered by plays, then by id.
func TopGames(state model.StatsState, n int) []GameRow {
	if n <= 0 || len(state.Games) == 0 {
		return nil
	}
	rows := make([]GameRow, 0, len(state.Games))
	for id, agg := range state.Games {
		rows = append(rows, GameRow{
			GameID:      id,
			Played:      agg.Played,
			Wins:        agg.Wins,
			WinRate:     WinRate(agg.Wins, agg.Played),
			AvgAccuracy: percentOf(agg.TotalAccuracy, agg.Played*100),
			BestTimeMs:  agg.BestTimeMs,
			Streak:      state.WinStreakByGame[id],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Played == rows[j].Played {
			return rows[i].GameID < rows[j].GameID
		}
		return rows[i].Played > rows[j].Played
	})
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// FormatBest renders a best time, or "-" when unset.
func FormatBest(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fs", float64(*ms)/1000)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the session overview.
func RenderSummary(w io.Writer, s Summary, now time.Time) error {
	if s.Played == 0 {
		_, err := fmt.Fprintln(w, "No games played this session.")
		return err
	}
	lines := []string{
		"Session",
		fmt.Sprintf("Games played: %d", s.Played),
		fmt.Sprintf("Wins: %d (%d%%)", s.Wins, s.WinRate),
		fmt.Sprintf("Mean accuracy: %d%%", s.MeanAccuracy),
		fmt.Sprintf("Avg time per game: %.1fs", s.AvgTime.Seconds()),
		fmt.Sprintf("Best streak: %d", s.BestStreak),
		fmt.Sprintf("Hard mode: %d%% of games", s.HardShare),
		fmt.Sprintf("Different games: %d", s.UniqueGames),
	}
	if !s.LastPlayedAt.IsZero() {
		lines = append(lines, "Last played: "+humanize.RelTime(s.LastPlayedAt, now, "ago", "from now"))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderGames prints one row per game. title maps a game id to a display name.
func RenderGames(w io.Writer, rows []GameRow, title func(string) string) error {
	if len(rows) == 0 {
		return nil
	}
	cols := AlignRight(Columns("#", "Game", "Played", "Wins", "Win rate", "Accuracy", "Best", "Streak"), 2, 3, 4, 5, 6, 7)
	table := make([][]string, 0, len(rows))
	for i, r := range rows {
		table = append(table, []string{
			humanize.Ordinal(i + 1),
			title(r.GameID),
			fmt.Sprintf("%d", r.Played),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d%%", r.WinRate),
			fmt.Sprintf("%d%%", r.AvgAccuracy),
			FormatBest(r.BestTimeMs),
			fmt.Sprintf("%d", r.Streak),
		})
	}
	for _, line := range FormatTable(cols, table) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCategories prints the win rate of each category.
func RenderCategories(w io.Writer, rates []CategoryRate) error {
	if len(rates) == 0 {
		return nil
	}
	table := make([][]string, 0, len(rates))
	for _, r := range rates {
		table = append(table, []string{string(r.Category), fmt.Sprintf("%d/%d", r.Wins, r.Played), fmt.Sprintf("%d%%", r.WinRate)})
	}
	cols := []Column{{Title: "Category"}, {Title: "Won", Right: true}, {Title: "Rate", Right: true}}
	for _, line := range FormatTable(cols, table) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
