package games

import (
	"fmt"
	"slices"
	"time"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDStroop identifies the Stroop color game.
const IDStroop = "stroop"

// StroopColor is one entry of the Stroop palette.
type StroopColor struct {
	Key  string
	Name string
	Hex  string
}

var stroopColors = []StroopColor{
	{Key: "red", Name: "RED", Hex: "#e53935"},
	{Key: "blue", Name: "BLUE", Hex: "#1e88e5"},
	{Key: "green", Name: "GREEN", Hex: "#43a047"},
	{Key: "yellow", Name: "YELLOW", Hex: "#fdd835"},
	{Key: "purple", Name: "PURPLE", Hex: "#8e24aa"},
	{Key: "orange", Name: "ORANGE", Hex: "#fb8c00"},
}

// Stroop shows color names printed in a different ink and asks for the ink.
type Stroop struct {
	// Limits holds the per-prompt time limit for easy, medium and hard.
	// Zero disables the limit.
	Limits [3]time.Duration
}

// StroopPrompt indexes the label and ink colors in the challenge palette.
type StroopPrompt struct {
	Label int
	Ink   int
}

// StroopChallenge is a fixed series of prompts over a palette.
type StroopChallenge struct {
	base
	Palette []StroopColor
	Prompts []StroopPrompt
	Limit   time.Duration
}

func (Stroop) ID() string { return IDStroop }

func (Stroop) Info() Info { return infoFor(IDStroop) }

func (s Stroop) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	// The palette is a fixed prefix so answer keys stay put between rounds.
	palette := slices.Clone(stroopColors[:model.Pick(d, 3, 4, 6)])
	prompts := make([]StroopPrompt, model.Pick(d, 6, 8, 10))
	for i := range prompts {
		prompts[i] = StroopPrompt{Label: g.Intn(len(palette)), Ink: g.Intn(len(palette))}
	}
	return &StroopChallenge{
		base:    base{game: IDStroop, diff: d},
		Palette: palette,
		Prompts: prompts,
		Limit:   s.Limits[d.Rank()],
	}
}

// TimeLimit implements Timed.
func (c *StroopChallenge) TimeLimit() time.Duration { return c.Limit }

// NewPlay implements Challenge.
func (c *StroopChallenge) NewPlay() Play { return &StroopPlay{c: c} }

// StroopWinThreshold returns the correct answers needed to win: ceil(0.7*n).
func StroopWinThreshold(n int) int {
	return (7*n + 9) / 10
}

// StroopPlay tracks progress through the prompts.
type StroopPlay struct {
	c       *StroopChallenge
	index   int
	correct int
	done    bool
}

// Current returns the prompt awaiting an answer.
func (p *StroopPlay) Current() (StroopPrompt, bool) {
	if p.done || p.index >= len(p.c.Prompts) {
		return StroopPrompt{}, false
	}
	return p.c.Prompts[p.index], true
}

// Index returns the zero-based position of the current prompt.
func (p *StroopPlay) Index() int { return p.index }

// Correct returns the number of correct answers so far.
func (p *StroopPlay) Correct() int { return p.correct }

func (p *StroopPlay) Evaluate(in Input) Outcome {
	prompt, ok := p.Current()
	if !ok {
		return ignored
	}
	hit := false
	feedback := ""
	switch v := in.(type) {
	case Choose:
		if v.Option < 0 || v.Option >= len(p.c.Palette) {
			return ignored
		}
		hit = v.Option == prompt.Ink
		if hit {
			feedback = "Correct ink."
		} else {
			feedback = "That was the word, not the ink."
		}
	case Timeout:
		feedback = "Time's up."
	default:
		return ignored
	}

	if hit {
		p.correct++
	}
	p.index++
	out := Outcome{Attempt: true, Correct: hit, Score: p.correct, Feedback: feedback}
	if p.index < len(p.c.Prompts) {
		return out
	}
	p.done = true
	out.Done = true
	out.Won = p.correct >= StroopWinThreshold(len(p.c.Prompts))
	out.Feedback = fmt.Sprintf("%d of %d correct.", p.correct, len(p.c.Prompts))
	return out
}
