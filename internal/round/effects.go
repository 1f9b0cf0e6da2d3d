package round

import (
	"time"

	"go.uber.org/zap"
)

// Effect is a feedback cue such as a sound or a celebration.
type Effect int

// Feedback cues.
const (
	EffectPad Effect = iota
	EffectCorrect
	EffectWrong
	EffectWin
	EffectLoss
)

// Effects plays feedback cues. Failures never affect the round.
type Effects interface {
	Play(e Effect, arg int) error
}

// EffectsFunc adapts a function to Effects.
type EffectsFunc func(e Effect, arg int) error

// Play implements Effects.
func (f EffectsFunc) Play(e Effect, arg int) error { return f(e, arg) }

func (m *Machine) effect(e Effect, arg int) {
	if m.effects == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("effect panicked", zap.Any("panic", r))
		}
	}()
	if err := m.effects.Play(e, arg); err != nil {
		m.logger.Warn("effect failed", zap.Int("effect", int(e)), zap.Error(err))
	}
}

// realScheduler uses time.AfterFunc. Callbacks run on their own goroutine,
// so it only suits callers that serialize access to the machine themselves.
type realScheduler struct{}

func (realScheduler) After(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() { r.t.Stop() }
