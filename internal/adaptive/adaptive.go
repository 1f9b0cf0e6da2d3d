// Package adaptive recommends difficulty changes from a player's recent
// results in one game.
package adaptive

import (
	"github.com/verte-zerg/senobi/internal/model"
)

// WindowSize is the number of recent results considered.
const WindowSize = 5

// MinSamples is the smallest window that yields a suggestion.
const MinSamples = 4

const (
	raiseWinRate  = 0.85
	raiseAccuracy = 80.0
	lowerWinRate  = 0.35
	lowerAccuracy = 55.0
)

// Suggestion is a transient difficulty hint.
type Suggestion int

// Suggestions.
const (
	None Suggestion = iota
	Raise
	Lower
)

// Message returns the text shown to the player, or "" for None.
func (s Suggestion) Message() string {
	switch s {
	case Raise:
		return "You're on fire. Try a harder level."
	case Lower:
		return "Take it easy. An easier level may help."
	default:
		return ""
	}
}

func (s Suggestion) String() string {
	switch s {
	case Raise:
		return "raise"
	case Lower:
		return "lower"
	default:
		return "none"
	}
}

// Target returns the difficulty the suggestion points to from d.
func (s Suggestion) Target(d model.Difficulty) model.Difficulty {
	switch s {
	case Raise:
		return d.Harder()
	case Lower:
		return d.Easier()
	default:
		return d
	}
}

// Window returns up to WindowSize results for gameID from a newest-first list.
func Window(results []model.GameResult, gameID string) []model.GameResult {
	out := make([]model.GameResult, 0, WindowSize)
	for _, r := range results {
		if r.GameID != gameID {
			continue
		}
		out = append(out, r)
		if len(out) == WindowSize {
			break
		}
	}
	return out
}

// Push prepends r to a newest-first window and trims it to WindowSize.
func Push(window []model.GameResult, r model.GameResult) []model.GameResult {
	out := make([]model.GameResult, 0, WindowSize)
	out = append(out, r)
	for _, prev := range window {
		if len(out) == WindowSize {
			break
		}
		out = append(out, prev)
	}
	return out
}

// Suggest inspects the first WindowSize results of window.
func Suggest(window []model.GameResult) Suggestion {
	if len(window) > WindowSize {
		window = window[:WindowSize]
	}
	if len(window) < MinSamples {
		return None
	}
	wins, accuracy := 0, 0
	for _, r := range window {
		if r.Won {
			wins++
		}
		accuracy += r.Accuracy
	}
	n := float64(len(window))
	winRate := float64(wins) / n
	mean := float64(accuracy) / n
	switch {
	case winRate >= raiseWinRate && mean >= raiseAccuracy:
		return Raise
	case winRate <= lowerWinRate && mean <= lowerAccuracy:
		return Lower
	default:
		return None
	}
}
