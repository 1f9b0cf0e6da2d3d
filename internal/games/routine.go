package games

import (
	"fmt"
	"slices"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDRoutine identifies the routine-ordering game.
const IDRoutine = "routine"

// DefaultRoutine is the reference day used when no custom list is configured.
var DefaultRoutine = []string{
	"Breakfast",
	"Shower",
	"Walk",
	"Lunch",
	"Nap",
	"Afternoon snack",
	"Family call",
	"Dinner",
}

// Routine asks the player to put the steps of a day back in order.
type Routine struct {
	Steps []string
}

// RoutineChallenge holds the reference order and the shuffled start.
type RoutineChallenge struct {
	base
	Target []string
	Start  []string
}

func (Routine) ID() string { return IDRoutine }

func (Routine) Info() Info { return infoFor(IDRoutine) }

func (r Routine) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	steps := r.Steps
	if len(steps) == 0 {
		steps = DefaultRoutine
	}
	n := model.Pick(d, 4, 6, 8)
	if n > len(steps) {
		n = len(steps)
	}
	target := append([]string(nil), steps[:n]...)
	start := generator.Shuffle(g, target)
	// A start that is already solved is no round at all.
	for tries := 0; len(target) > 1 && slices.Equal(start, target) && tries < 8; tries++ {
		start = generator.Shuffle(g, target)
	}
	return &RoutineChallenge{base: base{game: IDRoutine, diff: d}, Target: target, Start: start}
}

// NewPlay implements Challenge.
func (c *RoutineChallenge) NewPlay() Play {
	return &RoutinePlay{c: c, order: append([]string(nil), c.Start...)}
}

// CorrectPositions counts the positions where order matches target.
func CorrectPositions(order, target []string) int {
	n := 0
	for i := range order {
		if i < len(target) && order[i] == target[i] {
			n++
		}
	}
	return n
}

// RoutinePlay holds the player's current arrangement.
type RoutinePlay struct {
	c     *RoutineChallenge
	order []string
	done  bool
}

// Order returns a copy of the current arrangement.
func (p *RoutinePlay) Order() []string { return append([]string(nil), p.order...) }

func (p *RoutinePlay) Evaluate(in Input) Outcome {
	if p.done {
		return ignored
	}
	switch v := in.(type) {
	case Move:
		if v.From < 0 || v.From >= len(p.order) || v.To < 0 || v.To >= len(p.order) || v.From == v.To {
			return ignored
		}
		item := p.order[v.From]
		p.order = slices.Delete(p.order, v.From, v.From+1)
		p.order = slices.Insert(p.order, v.To, item)
		return Outcome{}
	case Submit:
		p.done = true
		total := len(p.c.Target)
		correct := CorrectPositions(p.order, p.c.Target)
		out := Outcome{
			Attempt:          true,
			Correct:          correct == total,
			Done:             true,
			Won:              correct == total,
			Score:            correct,
			Accuracy:         Percent(correct, total),
			ExplicitAccuracy: true,
			Feedback:         fmt.Sprintf("%d/%d in the right place.", correct, total),
		}
		if out.Won {
			out.Feedback = "Perfect routine."
		}
		return out
	default:
		return ignored
	}
}
