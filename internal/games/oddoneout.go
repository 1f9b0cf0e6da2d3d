package games

import (
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDOddOneOut identifies the odd-one-out grid game.
const IDOddOneOut = "odd-one-out"

type oddTheme struct {
	common string
	odd    string
}

var oddThemes = []oddTheme{
	{common: "🍎", odd: "🍅"},
	{common: "🐶", odd: "🐺"},
	{common: "⭐", odd: "🌟"},
	{common: "🔵", odd: "🟣"},
	{common: "😀", odd: "😃"},
	{common: "🌲", odd: "🌳"},
}

// OddOneOut asks for the single differing cell of a square grid.
type OddOneOut struct{}

// OddOneOutChallenge is a Side x Side grid with one odd cell.
type OddOneOutChallenge struct {
	base
	Side     int
	OddIndex int
	Common   string
	Odd      string
}

func (OddOneOut) ID() string { return IDOddOneOut }

func (OddOneOut) Info() Info { return infoFor(IDOddOneOut) }

func (OddOneOut) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	side := model.Pick(d, 3, 4, 5)
	theme := generator.Pick(g, oddThemes)
	return &OddOneOutChallenge{
		base:     base{game: IDOddOneOut, diff: d},
		Side:     side,
		OddIndex: g.Intn(side * side),
		Common:   theme.common,
		Odd:      theme.odd,
	}
}

// Cells returns the number of grid cells.
func (c *OddOneOutChallenge) Cells() int { return c.Side * c.Side }

// Cell returns the symbol shown at index i.
func (c *OddOneOutChallenge) Cell(i int) string {
	if i == c.OddIndex {
		return c.Odd
	}
	return c.Common
}

// NewPlay implements Challenge.
func (c *OddOneOutChallenge) NewPlay() Play { return &oddPlay{c: c} }

type oddPlay struct {
	c    *OddOneOutChallenge
	done bool
}

func (p *oddPlay) Evaluate(in Input) Outcome {
	pick, ok := in.(Pick)
	if !ok || p.done || pick.Cell < 0 || pick.Cell >= p.c.Cells() {
		return ignored
	}
	p.done = true
	return singleStep(pick.Cell == p.c.OddIndex, "Found it. Sharp eyes.", "That one matches the rest.")
}
