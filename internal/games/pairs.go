package games

import (
	"time"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDPairs identifies the pair-matching game.
const IDPairs = "pairs"

var pairFaces = []string{"🍎", "🍐", "🍇", "🍓", "🍒", "🥝", "🍋", "🍉", "🥥", "🍑"}

// Pairs is a memory game over a shuffled deck of duplicated faces.
type Pairs struct {
	MatchReveal    time.Duration
	MismatchReveal time.Duration
}

// Card is one card of a pairs deck.
type Card struct {
	PairID int
	Face   string
}

// PairsChallenge is a shuffled deck.
type PairsChallenge struct {
	base
	Cards          []Card
	MatchReveal    time.Duration
	MismatchReveal time.Duration
}

func (Pairs) ID() string { return IDPairs }

func (Pairs) Info() Info { return infoFor(IDPairs) }

func (p Pairs) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	faces := generator.Sample(g, pairFaces, model.Pick(d, 3, 6, 8))
	deck := make([]Card, 0, len(faces)*2)
	for i, face := range faces {
		deck = append(deck, Card{PairID: i, Face: face}, Card{PairID: i, Face: face})
	}
	return &PairsChallenge{
		base:           base{game: IDPairs, diff: d},
		Cards:          generator.Shuffle(g, deck),
		MatchReveal:    p.MatchReveal,
		MismatchReveal: p.MismatchReveal,
	}
}

// Pairs returns the number of pairs in the deck.
func (c *PairsChallenge) Pairs() int { return len(c.Cards) / 2 }

// NewPlay implements Challenge.
func (c *PairsChallenge) NewPlay() Play {
	return &PairsPlay{
		c:       c,
		faceUp:  make([]bool, len(c.Cards)),
		matched: make([]bool, len(c.Cards)),
	}
}

// Efficiency compares the minimum number of moves with the moves taken.
func Efficiency(pairs, moves int) int {
	if moves < 1 {
		moves = 1
	}
	return Percent(pairs, moves)
}

// PairsPlay is the board state of a pairs round.
type PairsPlay struct {
	c       *PairsChallenge
	faceUp  []bool
	matched []bool
	open    []int
	moves   int
	found   int
	pending bool
	done    bool
}

// FaceUp reports whether card i is currently visible.
func (p *PairsPlay) FaceUp(i int) bool { return p.faceUp[i] || p.matched[i] }

// Matched reports whether card i has been matched.
func (p *PairsPlay) Matched(i int) bool { return p.matched[i] }

// Moves returns the number of two-card turns taken.
func (p *PairsPlay) Moves() int { return p.moves }

// Found returns the number of matched pairs.
func (p *PairsPlay) Found() int { return p.found }

func (p *PairsPlay) Evaluate(in Input) Outcome {
	flip, ok := in.(Flip)
	if !ok || p.done || p.pending {
		return ignored
	}
	if flip.Card < 0 || flip.Card >= len(p.c.Cards) || p.faceUp[flip.Card] || p.matched[flip.Card] {
		return ignored
	}
	p.faceUp[flip.Card] = true
	p.open = append(p.open, flip.Card)
	if len(p.open) < 2 {
		return Outcome{Score: p.found}
	}

	p.moves++
	p.pending = true
	a, b := p.c.Cards[p.open[0]], p.c.Cards[p.open[1]]
	if a.PairID == b.PairID {
		p.found++
		return Outcome{Attempt: true, Correct: true, Score: p.found, Settle: true, Delay: p.c.MatchReveal, Feedback: "It's a pair!"}
	}
	return Outcome{Attempt: true, Score: p.found, Settle: true, Delay: p.c.MismatchReveal, Feedback: "Not a pair. Keep going."}
}

// Settle hides or locks the two open cards.
func (p *PairsPlay) Settle() Outcome {
	if !p.pending {
		return ignored
	}
	a, b := p.open[0], p.open[1]
	if p.c.Cards[a].PairID == p.c.Cards[b].PairID {
		p.matched[a], p.matched[b] = true, true
	}
	p.faceUp[a], p.faceUp[b] = false, false
	p.open = p.open[:0]
	p.pending = false

	if p.found < p.c.Pairs() {
		return Outcome{Score: p.found}
	}
	p.done = true
	return Outcome{
		Done:             true,
		Won:              true,
		Score:            p.found,
		Accuracy:         Efficiency(p.c.Pairs(), p.moves),
		ExplicitAccuracy: true,
		Feedback:         "All pairs found. Great memory!",
	}
}
