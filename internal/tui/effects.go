package tui

import (
	"io"

	"github.com/verte-zerg/senobi/internal/round"
)

const bell = "\a"

// bellEffects rings the terminal bell on mistakes and wins.
type bellEffects struct {
	out    io.Writer
	sounds bool
}

// Play implements round.Effects.
func (b bellEffects) Play(e round.Effect, _ int) error {
	if !b.sounds || b.out == nil {
		return nil
	}
	switch e {
	case round.EffectWrong, round.EffectWin:
		_, err := io.WriteString(b.out, bell)
		return err
	default:
		return nil
	}
}
