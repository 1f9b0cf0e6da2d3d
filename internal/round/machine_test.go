package round

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
)

var epoch = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	clock   *ManualClock
	machine *Machine
	done    []Closure
	effects []Effect
}

func newHarness(t *testing.T, game games.Game, d model.Difficulty) *harness {
	t.Helper()
	h := &harness{clock: NewManualClock(epoch)}
	h.machine = New(game, d, Options{
		Clock:     h.clock,
		Scheduler: h.clock,
		Generator: generator.NewSeeded(21),
		Effects: EffectsFunc(func(e Effect, _ int) error {
			h.effects = append(h.effects, e)
			return nil
		}),
		OnComplete: func(c Closure) { h.done = append(h.done, c) },
	})
	h.machine.Start()
	return h
}

func TestStroopTimeoutCountsAsMiss(t *testing.T) {
	game := games.Stroop{Limits: [3]time.Duration{9 * time.Second, 9 * time.Second, 6 * time.Second}}
	h := newHarness(t, game, model.Easy)
	require.Equal(t, AwaitingInput, h.machine.Phase())

	deadline, ok := h.machine.Deadline()
	require.True(t, ok)
	assert.Equal(t, epoch.Add(9*time.Second), deadline)

	h.clock.Advance(9*time.Second - time.Millisecond)
	assert.Equal(t, 0, h.machine.Attempts())

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, 1, h.machine.Attempts())
	assert.Equal(t, AwaitingInput, h.machine.Phase())

	prompts := len(h.machine.Challenge().(*games.StroopChallenge).Prompts)
	h.clock.Advance(time.Duration(prompts-1) * 9 * time.Second)

	require.Equal(t, Complete, h.machine.Phase())
	require.Len(t, h.done, 1)
	c := h.done[0]
	assert.False(t, c.Won)
	assert.Equal(t, prompts, c.Attempts)
	assert.Equal(t, 0, c.Score)
	assert.Equal(t, time.Duration(prompts)*9*time.Second, c.EndedAt.Sub(c.StartedAt))
	assert.Equal(t, 0, h.clock.Pending())
}

func TestAnswerRearmsTimeLimit(t *testing.T) {
	game := games.Stroop{Limits: [3]time.Duration{0, 9 * time.Second, 6 * time.Second}}
	h := newHarness(t, game, model.Hard)

	h.clock.Advance(5 * time.Second)
	require.True(t, h.machine.Act(games.Choose{Option: 0}))
	assert.Equal(t, 1, h.machine.Attempts())

	h.clock.Advance(5 * time.Second)
	assert.Equal(t, 1, h.machine.Attempts(), "limit restarts after each answer")
	h.clock.Advance(time.Second)
	assert.Equal(t, 2, h.machine.Attempts())
}

func TestIgnoredInputKeepsTimer(t *testing.T) {
	game := games.Stroop{Limits: [3]time.Duration{0, 9 * time.Second, 6 * time.Second}}
	h := newHarness(t, game, model.Medium)

	h.clock.Advance(4 * time.Second)
	assert.False(t, h.machine.Act(games.Choose{Option: 99}))
	assert.False(t, h.machine.Act(games.Timeout{}))
	h.clock.Advance(5 * time.Second)
	assert.Equal(t, 1, h.machine.Attempts())
}

func TestDifficultyChangeCancelsTimers(t *testing.T) {
	game := games.Stroop{Limits: [3]time.Duration{0, 9 * time.Second, 6 * time.Second}}
	h := newHarness(t, game, model.Medium)
	h.clock.Advance(3 * time.Second)

	h.machine.SetDifficulty(model.Easy)
	assert.Equal(t, model.Easy, h.machine.Difficulty())
	assert.Equal(t, AwaitingInput, h.machine.Phase())
	assert.Equal(t, 0, h.clock.Pending())

	h.clock.Advance(time.Minute)
	assert.Equal(t, 0, h.machine.Attempts())
	assert.Empty(t, h.done)
	_, ok := h.machine.Deadline()
	assert.False(t, ok)
}

type leakyScheduler struct {
	clock *ManualClock
}

func (l leakyScheduler) After(d time.Duration, fn func()) Timer {
	l.clock.After(d, fn)
	return noopTimer{}
}

type noopTimer struct{}

func (noopTimer) Stop() {}

func TestStaleTimerIsDropped(t *testing.T) {
	clock := NewManualClock(epoch)
	var done []Closure
	m := New(games.Stroop{Limits: [3]time.Duration{0, 9 * time.Second, 6 * time.Second}}, model.Medium, Options{
		Clock:      clock,
		Scheduler:  leakyScheduler{clock: clock},
		Generator:  generator.NewSeeded(2),
		OnComplete: func(c Closure) { done = append(done, c) },
	})
	m.Start()
	clock.Advance(8 * time.Second)
	m.Restart()

	clock.Advance(time.Second)
	assert.Equal(t, 0, m.Attempts(), "timer from the previous round must not fire")
	clock.Advance(8 * time.Second)
	assert.Equal(t, 1, m.Attempts())
}

func TestSimonPlayback(t *testing.T) {
	h := newHarness(t, games.Simon{}, model.Easy)
	seq := h.machine.Challenge().(*games.SimonChallenge).Pads
	require.Len(t, seq, 3)

	require.Equal(t, Presenting, h.machine.Phase())
	assert.Equal(t, seq[0], h.machine.Lit())
	assert.False(t, h.machine.Act(games.Press{Pad: seq[0]}), "input is closed during playback")

	h.clock.Advance(320 * time.Millisecond)
	assert.Equal(t, -1, h.machine.Lit())
	h.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, seq[1], h.machine.Lit())

	h.clock.Advance(620*time.Millisecond + 319*time.Millisecond)
	assert.Equal(t, seq[2], h.machine.Lit())
	assert.Equal(t, Presenting, h.machine.Phase())
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, AwaitingInput, h.machine.Phase())

	for _, pad := range seq {
		require.True(t, h.machine.Act(games.Press{Pad: pad}))
	}
	require.Len(t, h.done, 1)
	assert.True(t, h.done[0].Won)
	assert.Equal(t, 3, h.done[0].Attempts)
	assert.Equal(t, 3, h.done[0].Score)
	assert.Contains(t, h.effects, EffectWin)
}

func TestPairsRevealDelay(t *testing.T) {
	h := newHarness(t, games.Pairs{MatchReveal: 380 * time.Millisecond, MismatchReveal: 650 * time.Millisecond}, model.Easy)
	c := h.machine.Challenge().(*games.PairsChallenge)
	byPair := map[int][]int{}
	for i, card := range c.Cards {
		byPair[card.PairID] = append(byPair[card.PairID], i)
	}

	require.True(t, h.machine.Act(games.Flip{Card: byPair[0][0]}))
	require.True(t, h.machine.Act(games.Flip{Card: byPair[1][0]}))
	assert.Equal(t, Resolving, h.machine.Phase())
	assert.False(t, h.machine.Act(games.Flip{Card: byPair[2][0]}))

	h.clock.Advance(649 * time.Millisecond)
	assert.Equal(t, Resolving, h.machine.Phase())
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, AwaitingInput, h.machine.Phase())

	for pair := 0; pair < c.Pairs(); pair++ {
		require.True(t, h.machine.Act(games.Flip{Card: byPair[pair][0]}))
		require.True(t, h.machine.Act(games.Flip{Card: byPair[pair][1]}))
		h.clock.Advance(380 * time.Millisecond)
	}

	require.Len(t, h.done, 1)
	c0 := h.done[0]
	assert.True(t, c0.Won)
	assert.Equal(t, 4, c0.Attempts)
	assert.True(t, c0.ExplicitAccuracy)
	assert.Equal(t, 75, c0.Accuracy)
}

func TestPairsZeroRevealSettlesAtOnce(t *testing.T) {
	h := newHarness(t, games.Pairs{}, model.Easy)
	c := h.machine.Challenge().(*games.PairsChallenge)
	byPair := map[int][]int{}
	for i, card := range c.Cards {
		byPair[card.PairID] = append(byPair[card.PairID], i)
	}

	require.True(t, h.machine.Act(games.Flip{Card: byPair[0][0]}))
	require.True(t, h.machine.Act(games.Flip{Card: byPair[1][0]}))
	assert.Equal(t, AwaitingInput, h.machine.Phase())
	assert.Zero(t, h.clock.Pending())
	play := h.machine.Play().(*games.PairsPlay)
	assert.False(t, play.FaceUp(byPair[0][0]))

	for pair := 0; pair < c.Pairs(); pair++ {
		require.True(t, h.machine.Act(games.Flip{Card: byPair[pair][0]}))
		require.True(t, h.machine.Act(games.Flip{Card: byPair[pair][1]}))
	}
	require.Len(t, h.done, 1)
	assert.True(t, h.done[0].Won)
	assert.Equal(t, Complete, h.machine.Phase())
}

func TestCancelProducesNoClosure(t *testing.T) {
	h := newHarness(t, games.Pairs{MatchReveal: 380 * time.Millisecond, MismatchReveal: 650 * time.Millisecond}, model.Easy)
	c := h.machine.Challenge().(*games.PairsChallenge)
	for i := range c.Cards {
		if c.Cards[i].PairID == c.Cards[0].PairID && i != 0 {
			h.machine.Act(games.Flip{Card: 0})
			h.machine.Act(games.Flip{Card: i})
			break
		}
	}
	h.machine.Cancel()
	assert.Equal(t, Cancelled, h.machine.Phase())
	assert.Equal(t, 0, h.clock.Pending())
	h.clock.Advance(time.Second)
	assert.Empty(t, h.done)
	_, ok := h.machine.Closure()
	assert.False(t, ok)
	assert.False(t, h.machine.Act(games.Flip{Card: 1}))
}

func TestSingleStepGameCompletes(t *testing.T) {
	h := newHarness(t, games.OddOneOut{}, model.Medium)
	c := h.machine.Challenge().(*games.OddOneOutChallenge)
	h.clock.Advance(2500 * time.Millisecond)
	require.True(t, h.machine.Act(games.Pick{Cell: c.OddIndex}))

	closure, ok := h.machine.Closure()
	require.True(t, ok)
	assert.Equal(t, games.IDOddOneOut, closure.GameID)
	assert.Equal(t, model.Medium, closure.Difficulty)
	assert.Equal(t, 1, closure.Score)
	assert.Equal(t, 1, closure.Attempts)
	assert.True(t, closure.Won)
	assert.Equal(t, 2500*time.Millisecond, closure.EndedAt.Sub(closure.StartedAt))
	assert.False(t, h.machine.Act(games.Pick{Cell: c.OddIndex}))
}

func TestFailingEffectsAreIgnored(t *testing.T) {
	clock := NewManualClock(epoch)
	calls := 0
	core, logs := observer.New(zapcore.WarnLevel)
	m := New(games.Simon{}, model.Easy, Options{
		Clock:     clock,
		Scheduler: clock,
		Generator: generator.NewSeeded(1),
		Logger:    zap.New(core),
		Effects: EffectsFunc(func(e Effect, _ int) error {
			calls++
			if e == EffectPad {
				panic("audio device gone")
			}
			return errors.New("playback blocked")
		}),
	})
	m.Start()
	clock.Advance(5 * time.Second)
	require.Equal(t, AwaitingInput, m.Phase())
	seq := m.Challenge().(*games.SimonChallenge).Pads
	wrong := (seq[0] + 1) % games.PadCount
	require.True(t, m.Act(games.Press{Pad: wrong}))
	assert.Equal(t, Complete, m.Phase())
	assert.Positive(t, calls)
	assert.Positive(t, logs.FilterMessage("effect panicked").Len())
	assert.Positive(t, logs.FilterMessage("effect failed").Len())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "awaiting-input", AwaitingInput.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}
