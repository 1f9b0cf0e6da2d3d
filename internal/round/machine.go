// Package round drives a single challenge from setup to completion,
// including playback, time limits and delayed reveals.
package round

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

// Phase is the state of a round.
type Phase int

// Round phases.
const (
	Setup Phase = iota
	Presenting
	AwaitingInput
	Resolving
	Complete
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Presenting:
		return "presenting"
	case AwaitingInput:
		return "awaiting-input"
	case Resolving:
		return "resolving"
	case Complete:
		return "complete"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Closure is the terminal state of a round, handed to OnComplete.
type Closure struct {
	GameID           string
	Difficulty       model.Difficulty
	Score            int
	Attempts         int
	Won              bool
	Accuracy         int
	ExplicitAccuracy bool
	StartedAt        time.Time
	EndedAt          time.Time
}

// Options configures a Machine. Zero values fall back to real time, a
// time-seeded generator, no effects and a no-op logger.
type Options struct {
	Clock            Clock
	Scheduler        Scheduler
	Generator        *generator.Generator
	Effects          Effects
	Logger           *zap.Logger
	PlaybackInterval time.Duration
	PulseDuration    time.Duration
	// OnComplete receives the closure of every round that completes.
	// Cancelled rounds never reach it.
	OnComplete func(Closure)
}

// Machine is the state machine of one game. It is driven from a single
// goroutine: inputs and scheduled callbacks must not run concurrently.
type Machine struct {
	game      games.Game
	diff      model.Difficulty
	clock     Clock
	sched     Scheduler
	gen       *generator.Generator
	effects   Effects
	logger    *zap.Logger
	interval  time.Duration
	pulse     time.Duration
	onDone    func(Closure)
	phase     Phase
	round     uint64
	challenge games.Challenge
	play      games.Play
	attempts  int
	score     int
	lit       int
	feedback  string
	startedAt time.Time
	deadline  time.Time
	timeout   Timer
	pending   Timer
	closure   *Closure
}

// New returns a Machine in the Setup phase. Call Start to begin the first round.
func New(game games.Game, d model.Difficulty, opts Options) *Machine {
	timing := model.DefaultTiming()
	m := &Machine{
		game:     game,
		diff:     d,
		clock:    opts.Clock,
		sched:    opts.Scheduler,
		gen:      opts.Generator,
		effects:  opts.Effects,
		logger:   opts.Logger,
		interval: opts.PlaybackInterval,
		pulse:    opts.PulseDuration,
		onDone:   opts.OnComplete,
		lit:      -1,
	}
	if m.clock == nil {
		m.clock = SystemClock()
	}
	if m.sched == nil {
		m.sched = realScheduler{}
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.interval <= 0 {
		m.interval = timing.PlaybackInterval
	}
	if m.pulse <= 0 {
		m.pulse = timing.PulseDuration
	}
	m.logger = m.logger.With(zap.String("game", game.ID()))
	return m
}

// Start discards any round in progress and begins a fresh one.
func (m *Machine) Start() {
	m.stopTimers()
	m.round++
	m.phase = Setup
	m.challenge = m.game.Generate(m.gen, m.diff)
	m.play = m.challenge.NewPlay()
	m.attempts = 0
	m.score = 0
	m.lit = -1
	m.feedback = ""
	m.closure = nil
	m.startedAt = m.clock.Now()
	m.logger.Debug("round started", zap.Uint64("round", m.round), zap.String("difficulty", string(m.diff)))

	if pb, ok := m.challenge.(games.Playback); ok && len(pb.Sequence()) > 0 {
		m.phase = Presenting
		m.showStep(m.round, pb.Sequence(), 0)
		return
	}
	m.await()
}

// Restart begins a new round at the current difficulty.
func (m *Machine) Restart() { m.Start() }

// SetDifficulty cancels the current round and starts one at d.
func (m *Machine) SetDifficulty(d model.Difficulty) {
	m.diff = d
	m.Start()
}

// Cancel abandons the current round. No closure is produced.
func (m *Machine) Cancel() {
	if m.phase == Complete || m.phase == Cancelled {
		return
	}
	m.stopTimers()
	m.round++
	m.phase = Cancelled
	m.lit = -1
	m.logger.Debug("round cancelled")
}

// Act submits a player input. It reports whether the input was accepted.
func (m *Machine) Act(in games.Input) bool {
	if m.phase != AwaitingInput {
		return false
	}
	if _, ok := in.(games.Timeout); ok {
		return false
	}
	return m.resolve(in)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Game returns the game being played.
func (m *Machine) Game() games.Game { return m.game }

// Difficulty returns the difficulty of the current round.
func (m *Machine) Difficulty() model.Difficulty { return m.diff }

// Challenge returns the content of the current round.
func (m *Machine) Challenge() games.Challenge { return m.challenge }

// Play returns the progress of the current round.
func (m *Machine) Play() games.Play { return m.play }

// Attempts returns the attempts made in the current round.
func (m *Machine) Attempts() int { return m.attempts }

// Score returns the score of the current round.
func (m *Machine) Score() int { return m.score }

// Lit returns the pad lit during playback, or -1.
func (m *Machine) Lit() int { return m.lit }

// Feedback returns the latest feedback message.
func (m *Machine) Feedback() string { return m.feedback }

// StartedAt returns when the current round started.
func (m *Machine) StartedAt() time.Time { return m.startedAt }

// Deadline returns when the running time limit expires.
func (m *Machine) Deadline() (time.Time, bool) {
	if m.timeout == nil || m.phase != AwaitingInput {
		return time.Time{}, false
	}
	return m.deadline, true
}

// Closure returns the terminal state once the round is complete.
func (m *Machine) Closure() (Closure, bool) {
	if m.closure == nil {
		return Closure{}, false
	}
	return *m.closure, true
}

func (m *Machine) showStep(round uint64, seq []int, i int) {
	m.lit = seq[i]
	m.effect(EffectPad, seq[i])
	m.pending = m.after(round, m.pulse, func() {
		m.lit = -1
		if i+1 >= len(seq) {
			m.pending = nil
			m.await()
			return
		}
		gap := m.interval - m.pulse
		if gap < 0 {
			gap = 0
		}
		m.pending = m.after(round, gap, func() { m.showStep(round, seq, i+1) })
	})
}

func (m *Machine) await() {
	m.phase = AwaitingInput
	m.armTimeout()
}

func (m *Machine) armTimeout() {
	timed, ok := m.challenge.(games.Timed)
	if !ok || timed.TimeLimit() <= 0 {
		return
	}
	stop(&m.timeout)
	limit := timed.TimeLimit()
	m.deadline = m.clock.Now().Add(limit)
	m.timeout = m.after(m.round, limit, func() {
		m.timeout = nil
		if m.phase != AwaitingInput {
			return
		}
		m.logger.Debug("time limit reached", zap.Duration("limit", limit))
		m.resolve(games.Timeout{})
	})
}

func (m *Machine) resolve(in games.Input) bool {
	m.phase = Resolving
	out := m.play.Evaluate(in)
	if out.Ignored {
		m.phase = AwaitingInput
		return false
	}
	m.apply(out)
	return true
}

func (m *Machine) apply(out games.Outcome) {
	if out.Attempt {
		m.attempts++
		stop(&m.timeout)
		if out.Correct {
			m.effect(EffectCorrect, 0)
		} else {
			m.effect(EffectWrong, 0)
		}
	}
	m.score = out.Score
	if out.Feedback != "" {
		m.feedback = out.Feedback
	}
	if out.Done {
		m.complete(out)
		return
	}
	if _, ok := m.play.(games.Settler); ok && out.Settle {
		if out.Delay <= 0 {
			m.settle()
			return
		}
		round := m.round
		m.pending = m.after(round, out.Delay, func() {
			m.pending = nil
			m.settle()
		})
		return
	}
	m.phase = AwaitingInput
	if m.timeout == nil {
		m.armTimeout()
	}
}

func (m *Machine) settle() {
	out := m.play.(games.Settler).Settle()
	if out.Ignored {
		m.await()
		return
	}
	m.apply(out)
}

func (m *Machine) complete(out games.Outcome) {
	m.stopTimers()
	m.phase = Complete
	c := Closure{
		GameID:           m.game.ID(),
		Difficulty:       m.diff,
		Score:            out.Score,
		Attempts:         m.attempts,
		Won:              out.Won,
		Accuracy:         out.Accuracy,
		ExplicitAccuracy: out.ExplicitAccuracy,
		StartedAt:        m.startedAt,
		EndedAt:          m.clock.Now(),
	}
	m.closure = &c
	if out.Won {
		m.effect(EffectWin, 0)
	} else {
		m.effect(EffectLoss, 0)
	}
	m.logger.Info("round complete",
		zap.String("difficulty", string(c.Difficulty)),
		zap.Bool("won", c.Won),
		zap.Int("score", c.Score),
		zap.Int("attempts", c.Attempts),
	)
	if m.onDone != nil {
		m.onDone(c)
	}
}

// after schedules fn for the given round; it is dropped if the round changed.
func (m *Machine) after(round uint64, d time.Duration, fn func()) Timer {
	return m.sched.After(d, func() {
		if m.round != round {
			m.logger.Debug("stale timer dropped", zap.Uint64("round", round))
			return
		}
		fn()
	})
}

func (m *Machine) stopTimers() {
	stop(&m.timeout)
	stop(&m.pending)
}

func stop(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
