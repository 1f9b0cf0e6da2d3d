package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/senobi/internal/model"
)

// Journal lists recorded results, oldest first.
type Journal interface {
	ListResults(ctx context.Context, gameID string, last int) ([]model.GameResult, error)
}

// Report contains precomputed curves for the session report.
type Report struct {
	Results  []model.GameResult
	Accuracy []float64
	Seconds  []float64
}

// BuildReport loads up to last results (all games when gameID is empty) and
// smooths them over window.
func BuildReport(ctx context.Context, j Journal, gameID string, last, window int) (Report, error) {
	results, err := j.ListResults(ctx, gameID, last)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list results: %w", err)
	}
	acc := make([]float64, len(results))
	secs := make([]float64, len(results))
	for i, r := range results {
		acc[i] = float64(r.Accuracy)
		secs[i] = float64(r.TimeMs) / 1000
	}
	return Report{
		Results:  results,
		Accuracy: MovingAverage(acc, window),
		Seconds:  MovingAverage(secs, window),
	}, nil
}

// RenderCurves prints accuracy and time sparklines for the report.
func RenderCurves(w io.Writer, r Report) error {
	if len(r.Results) < 2 {
		return nil
	}
	lines := []string{
		fmt.Sprintf("Curves over %d games", len(r.Results)),
		fmt.Sprintf("Accuracy [%s] %.0f%% -> %.0f%%", Sparkline(r.Accuracy), r.Accuracy[0], r.Accuracy[len(r.Accuracy)-1]),
		fmt.Sprintf("Time     [%s] %.1fs -> %.1fs", Sparkline(r.Seconds), r.Seconds[0], r.Seconds[len(r.Seconds)-1]),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
