// Package games implements the challenge variants: generating round content
// for a difficulty and judging player input against it.
package games

import (
	"math"
	"time"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// Game generates challenges of one kind.
type Game interface {
	ID() string
	Info() Info
	Generate(g *generator.Generator, d model.Difficulty) Challenge
}

// Challenge is the immutable content of one round.
type Challenge interface {
	GameID() string
	Difficulty() model.Difficulty
	// NewPlay returns fresh round-local progress over the challenge.
	NewPlay() Play
}

// Play tracks the progress of a single round.
type Play interface {
	Evaluate(in Input) Outcome
}

// Settler is implemented by plays whose outcome is revealed after a delay.
// Settle is called once the Outcome.Delay of a settling outcome has elapsed.
type Settler interface {
	Settle() Outcome
}

// Timed is implemented by challenges with a per-step time limit.
type Timed interface {
	TimeLimit() time.Duration
}

// Playback is implemented by challenges that are shown before input opens.
type Playback interface {
	Sequence() []int
}

// Outcome is the judgement of one input.
type Outcome struct {
	// Ignored marks input that was invalid for the current state.
	Ignored bool
	// Attempt marks input that counts towards the attempt total.
	Attempt bool
	Correct bool
	Done    bool
	Won     bool
	// Score is the round score so far.
	Score int
	// Accuracy overrides the default score/attempts ratio when ExplicitAccuracy is set.
	Accuracy         int
	ExplicitAccuracy bool
	// Settle asks for Settler.Settle to be called after Delay. A zero Delay
	// settles at once.
	Settle   bool
	Delay    time.Duration
	Feedback string
}

var ignored = Outcome{Ignored: true}

// singleStep builds the outcome of a one-answer round.
func singleStep(correct bool, hit, miss string) Outcome {
	out := Outcome{Attempt: true, Correct: correct, Done: true, Won: correct, Feedback: miss}
	if correct {
		out.Score = 1
		out.Feedback = hit
	}
	return out
}

// Percent returns round(100*part/whole) clamped to [0,100]; 0 when whole <= 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	v := int(math.Round(float64(part) / float64(whole) * 100))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type base struct {
	game string
	diff model.Difficulty
}

func (b base) GameID() string { return b.game }

func (b base) Difficulty() model.Difficulty { return b.diff }
