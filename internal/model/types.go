// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the parameter set of a challenge.
type Difficulty string

// Supported difficulties, ordered from easiest to hardest.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ErrInvalidDifficulty is returned when a difficulty string is not recognized.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulties lists all difficulties in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty parses a case-insensitive difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Rank returns 0 for easy, 1 for medium and 2 for hard. Unknown values rank as easy.
func (d Difficulty) Rank() int {
	switch d {
	case Medium:
		return 1
	case Hard:
		return 2
	default:
		return 0
	}
}

// Harder returns the next difficulty up, or hard.
func (d Difficulty) Harder() Difficulty {
	all := Difficulties()
	if r := d.Rank(); r < len(all)-1 {
		return all[r+1]
	}
	return Hard
}

// Easier returns the next difficulty down, or easy.
func (d Difficulty) Easier() Difficulty {
	if r := d.Rank(); r > 0 {
		return Difficulties()[r-1]
	}
	return Easy
}

// Label returns a display label.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// Pick returns the value matching d from an easy/medium/hard triple.
func Pick[T any](d Difficulty, easy, medium, hard T) T {
	switch d {
	case Medium:
		return medium
	case Hard:
		return hard
	default:
		return easy
	}
}

// GameResult captures one completed round.
type GameResult struct {
	GameID     string     `json:"gameId"`
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
	Accuracy   int        `json:"accuracy"`
	TimeMs     int64      `json:"timeMs"`
	Attempts   int        `json:"attempts"`
	Won        bool       `json:"won"`
	PlayedAt   time.Time  `json:"playedAt"`
}

// DifficultyCount counts plays and wins at one difficulty.
type DifficultyCount struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
}

// GameAggregate summarizes every recorded result of one game.
type GameAggregate struct {
	GameID        string                         `json:"gameId"`
	Played        int                            `json:"played"`
	Wins          int                            `json:"wins"`
	TotalAccuracy int                            `json:"totalAccuracy"`
	BestTimeMs    *int64                         `json:"bestTimeMs,omitempty"`
	ByDifficulty  map[Difficulty]DifficultyCount `json:"byDifficulty"`
}

// NewGameAggregate returns an empty aggregate with every difficulty present.
func NewGameAggregate(gameID string) GameAggregate {
	by := make(map[Difficulty]DifficultyCount, 3)
	for _, d := range Difficulties() {
		by[d] = DifficultyCount{}
	}
	return GameAggregate{GameID: gameID, ByDifficulty: by}
}

// StatsState is the player's cumulative record for a session.
type StatsState struct {
	TotalPlayed     int                      `json:"totalPlayed"`
	TotalWins       int                      `json:"totalWins"`
	TotalTimeMs     int64                    `json:"totalTimeMs"`
	UniqueGameIDs   []string                 `json:"uniqueGameIds"`
	HardWins        []string                 `json:"hardWins"`
	WinStreakByGame map[string]int           `json:"winStreakByGame"`
	Games           map[string]GameAggregate `json:"games"`
	RecentResults   []GameResult             `json:"recentResults"`
}

// NewStatsState returns the canonical empty state.
func NewStatsState() StatsState {
	return StatsState{
		UniqueGameIDs:   []string{},
		HardWins:        []string{},
		WinStreakByGame: map[string]int{},
		Games:           map[string]GameAggregate{},
		RecentResults:   []GameResult{},
	}
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// PlayConfig defines play settings resolved from config, env and flags.
type PlayConfig struct {
	Game         string
	Difficulty   Difficulty
	Seed         int64
	Sounds       bool
	RoutineSteps []string
	Timing       TimingConfig
}

// TimingConfig holds timed-transition durations.
type TimingConfig struct {
	StroopEasy       time.Duration
	StroopMedium     time.Duration
	StroopHard       time.Duration
	PlaybackInterval time.Duration
	PulseDuration    time.Duration
	MatchReveal      time.Duration
	MismatchReveal   time.Duration
}

// DefaultTiming returns the stock timing values.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		StroopMedium:     9 * time.Second,
		StroopHard:       6 * time.Second,
		PlaybackInterval: 620 * time.Millisecond,
		PulseDuration:    320 * time.Millisecond,
		MatchReveal:      380 * time.Millisecond,
		MismatchReveal:   650 * time.Millisecond,
	}
}
