package games

import (
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// IDShapes identifies the shape-fitting game.
const IDShapes = "shapes"

var shapeGlyphs = []string{"▲", "●", "■", "◆", "⬟", "⬢", "⬣", "✦"}

// Shapes asks the player to fit each piece onto its silhouette.
type Shapes struct{}

// ShapesChallenge holds pieces, their starting angles and the silhouette order.
type ShapesChallenge struct {
	base
	Pieces      []string
	StartAngles []int
	// Targets lists piece ids in silhouette order.
	Targets  []int
	Rotation bool
}

func (Shapes) ID() string { return IDShapes }

func (Shapes) Info() Info { return infoFor(IDShapes) }

func (Shapes) Generate(g *generator.Generator, d model.Difficulty) Challenge {
	pieces := generator.Sample(g, shapeGlyphs, model.Pick(d, 3, 5, 7))
	rotation := d != model.Easy
	angles := make([]int, len(pieces))
	targets := make([]int, len(pieces))
	for i := range pieces {
		if rotation {
			angles[i] = g.Intn(4) * 90
		}
		targets[i] = i
	}
	return &ShapesChallenge{
		base:        base{game: IDShapes, diff: d},
		Pieces:      pieces,
		StartAngles: angles,
		Targets:     generator.Shuffle(g, targets),
		Rotation:    rotation,
	}
}

// NewPlay implements Challenge.
func (c *ShapesChallenge) NewPlay() Play {
	return &ShapesPlay{
		c:      c,
		angles: append([]int(nil), c.StartAngles...),
		placed: make([]bool, len(c.Pieces)),
		active: -1,
	}
}

// ShapesPlay tracks rotations and placements.
type ShapesPlay struct {
	c      *ShapesChallenge
	angles []int
	placed []bool
	active int
	count  int
	done   bool
}

// Active returns the selected piece, or -1.
func (p *ShapesPlay) Active() int { return p.active }

// Angle returns the current rotation of piece i in degrees.
func (p *ShapesPlay) Angle(i int) int { return p.angles[i] }

// Placed reports whether piece i sits on its silhouette.
func (p *ShapesPlay) Placed(i int) bool { return p.placed[i] }

func (p *ShapesPlay) Evaluate(in Input) Outcome {
	if p.done {
		return ignored
	}
	switch v := in.(type) {
	case Select:
		if v.Piece < 0 || v.Piece >= len(p.c.Pieces) || p.placed[v.Piece] {
			return ignored
		}
		p.active = v.Piece
		return Outcome{Score: p.count}
	case Rotate:
		if !p.c.Rotation || p.active < 0 {
			return ignored
		}
		p.angles[p.active] = (p.angles[p.active] + 90) % 360
		return Outcome{Score: p.count}
	case Place:
		if p.active < 0 || v.Target < 0 || v.Target >= len(p.c.Pieces) || p.placed[v.Target] {
			return ignored
		}
		return p.place(v.Target)
	default:
		return ignored
	}
}

func (p *ShapesPlay) place(target int) Outcome {
	rotationOK := !p.c.Rotation || p.angles[p.active]%360 == 0
	if target != p.active || !rotationOK {
		feedback := "Doesn't fit. Try another silhouette."
		if p.c.Rotation {
			feedback = "Doesn't fit. Try another silhouette or rotate."
		}
		return Outcome{Attempt: true, Score: p.count, Feedback: feedback}
	}
	p.placed[target] = true
	p.active = -1
	p.count++
	if p.count < len(p.c.Pieces) {
		return Outcome{Attempt: true, Correct: true, Score: p.count, Feedback: "Perfect fit."}
	}
	p.done = true
	return Outcome{Attempt: true, Correct: true, Done: true, Won: true, Score: p.count, Feedback: "Figure complete."}
}
