package games

import (
	"fmt"

	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDClock identifies the clock-setting game.
const IDClock = "clock"

const minutesPerDial = 12 * 60

// Clock asks the player to set a dial to a target time.
type Clock struct{}

// ClockChallenge is a target time and the accepted error.
type ClockChallenge struct {
	base
	Hour      int
	Minute    int
	Tolerance int
}

func (Clock) ID() string { return IDClock }

func (Clock) Info() Info { return infoFor(IDClock) }

func (Clock) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	return &ClockChallenge{
		base:      base{game: IDClock, diff: d},
		Hour:      g.Between(1, 12),
		Minute:    g.Intn(12) * 5,
		Tolerance: model.Pick(d, 12, 8, 5),
	}
}

// NewPlay implements Challenge.
func (c *ClockChallenge) NewPlay() Play { return &clockPlay{c: c} }

// MinuteDistance returns the shortest distance in minutes between two dial
// positions, wrapping at twelve hours.
func MinuteDistance(h1, m1, h2, m2 int) int {
	a := (h1%12)*60 + m1
	b := (h2%12)*60 + m2
	d := a - b
	if d < 0 {
		d = -d
	}
	d %= minutesPerDial
	if minutesPerDial-d < d {
		return minutesPerDial - d
	}
	return d
}

type clockPlay struct {
	c    *ClockChallenge
	done bool
}

func (p *clockPlay) Evaluate(in Input) Outcome {
	if p.done {
		return ignored
	}
	set, ok := in.(SetTime)
	if !ok || set.Hour < 1 || set.Hour > 12 || set.Minute < 0 || set.Minute > 59 {
		return ignored
	}
	p.done = true
	dist := MinuteDistance(set.Hour, set.Minute, p.c.Hour, p.c.Minute)
	return singleStep(dist <= p.c.Tolerance,
		"Spot on. Right time.",
		fmt.Sprintf("Off by %d minutes. It was %d:%02d.", dist, p.c.Hour, p.c.Minute))
}
