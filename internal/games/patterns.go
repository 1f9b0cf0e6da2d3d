package games

import (
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDPatterns identifies the sequence-completion game.
const IDPatterns = "patterns"

// Placeholder marks the missing slot of a pattern.
const Placeholder = "?"

type patternEntry struct {
	sequence []string
	answer   string
	options  []string
}

var patternBank = map[model.Difficulty][]patternEntry{
	model.Easy: {
		{sequence: []string{"🔵", "🟢", "🔵", "🟢", Placeholder}, answer: "🔵", options: []string{"🔵", "🟢", "🟣"}},
		{sequence: []string{"🌞", "🌙", "🌞", "🌙", Placeholder}, answer: "🌞", options: []string{"🌞", "🌙", "⭐"}},
	},
	model.Medium: {
		{sequence: []string{"🟥", "🟨", "🟨", "🟥", "🟨", Placeholder}, answer: "🟨", options: []string{"🟨", "🟥", "🟦", "🟩"}},
		{sequence: []string{"🍎", "🍎", "🍐", "🍎", "🍎", Placeholder}, answer: "🍐", options: []string{"🍎", "🍐", "🍇", "🍒"}},
	},
	model.Hard: {
		{sequence: []string{"1", "2", "3", "1", "2", "3", "1", Placeholder}, answer: "2", options: []string{"1", "2", "3", "4", "5", "6"}},
		{sequence: []string{"2", "4", "6", "8", "10", Placeholder}, answer: "12", options: []string{"9", "10", "11", "12", "14", "16"}},
	},
}

// Patterns asks for the element that completes a sequence.
type Patterns struct{}

// PatternsChallenge is a sequence with one Placeholder and shuffled options.
type PatternsChallenge struct {
	base
	Sequence []string
	Options  []string
	Answer   string
}

func (Patterns) ID() string { return IDPatterns }

func (Patterns) Info() Info { return infoFor(IDPatterns) }

func (Patterns) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	bank := patternBank[d]
	if len(bank) == 0 {
		bank = patternBank[model.Easy]
	}
	entry := generator.Pick(g, bank)
	return &PatternsChallenge{
		base:     base{game: IDPatterns, diff: d},
		Sequence: append([]string(nil), entry.sequence...),
		Options:  generator.Shuffle(g, entry.options),
		Answer:   entry.answer,
	}
}

// NewPlay implements Challenge.
func (c *PatternsChallenge) NewPlay() Play { return &patternsPlay{c: c} }

type patternsPlay struct {
	c    *PatternsChallenge
	done bool
}

func (p *patternsPlay) Evaluate(in Input) Outcome {
	choose, ok := in.(Choose)
	if !ok || p.done || choose.Option < 0 || choose.Option >= len(p.c.Options) {
		return ignored
	}
	p.done = true
	return singleStep(p.c.Options[choose.Option] == p.c.Answer,
		"Correct. You saw the pattern.",
		"Not quite. The answer was "+p.c.Answer+".")
}
