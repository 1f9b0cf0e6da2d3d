package games

import (
	"fmt"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDSimon identifies the sequence-repeat game.
const IDSimon = "simon"

// PadCount is the number of pads in a simon round.
const PadCount = 4

// Simon plays a pad sequence and asks the player to repeat it.
type Simon struct{}

// SimonChallenge is the sequence of pad indexes to repeat.
type SimonChallenge struct {
	base
	Pads []int
}

func (Simon) ID() string { return IDSimon }

func (Simon) Info() Info { return infoFor(IDSimon) }

func (Simon) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	pads := make([]int, model.Pick(d, 3, 4, 5))
	for i := range pads {
		pads[i] = g.Intn(PadCount)
	}
	return &SimonChallenge{base: base{game: IDSimon, diff: d}, Pads: pads}
}

// Sequence implements Playback.
func (c *SimonChallenge) Sequence() []int { return c.Pads }

// NewPlay implements Challenge.
func (c *SimonChallenge) NewPlay() Play { return &SimonPlay{c: c} }

// SimonPlay checks presses one at a time.
type SimonPlay struct {
	c    *SimonChallenge
	pos  int
	done bool
}

// Position returns the number of pads repeated correctly.
func (p *SimonPlay) Position() int { return p.pos }

func (p *SimonPlay) Evaluate(in Input) Outcome {
	press, ok := in.(Press)
	if !ok || p.done || press.Pad < 0 || press.Pad >= PadCount {
		return ignored
	}
	if press.Pad != p.c.Pads[p.pos] {
		p.done = true
		return Outcome{Attempt: true, Done: true, Score: p.pos, Feedback: "Wrong pad. Sequence broken."}
	}
	p.pos++
	if p.pos < len(p.c.Pads) {
		return Outcome{Attempt: true, Correct: true, Score: p.pos, Feedback: fmt.Sprintf("Good. Step %d/%d", p.pos, len(p.c.Pads))}
	}
	p.done = true
	return Outcome{Attempt: true, Correct: true, Done: true, Won: true, Score: p.pos, Feedback: "Perfect. Sequence complete."}
}
