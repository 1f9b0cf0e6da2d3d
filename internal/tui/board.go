package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/senobi/internal/games"
)

const (
	pairsCols = 4
	simonCols = 2
)

// board holds the cursor state of the play screen for one round.
type board struct {
	cursor int
	hour   int
	minute int
	// slots is true while the shapes cursor is on the silhouettes.
	slots bool
	slot  int
	// held is the routine step being moved, or -1.
	held int
}

func newBoard() board {
	return board{hour: 12, held: -1}
}

// handle maps a key press to a game input. It returns false when the key
// only moved the cursor or means nothing for the challenge.
func (b *board) handle(keys keyMap, msg tea.KeyMsg, c games.Challenge) (games.Input, bool) {
	switch ch := c.(type) {
	case *games.ClockChallenge:
		return b.handleClock(keys, msg)
	case *games.PairsChallenge:
		b.cursor = moveGrid(keys, msg, b.cursor, len(ch.Cards), pairsCols)
		if key.Matches(msg, keys.Enter) {
			return games.Flip{Card: b.cursor}, true
		}
	case *games.PatternsChallenge:
		return b.handleOptions(keys, msg, len(ch.Options))
	case *games.StroopChallenge:
		return b.handleOptions(keys, msg, len(ch.Palette))
	case *games.ShapesChallenge:
		return b.handleShapes(keys, msg, ch)
	case *games.OddOneOutChallenge:
		b.cursor = moveGrid(keys, msg, b.cursor, ch.Cells(), ch.Side)
		if key.Matches(msg, keys.Enter) {
			return games.Pick{Cell: b.cursor}, true
		}
	case *games.SimonChallenge:
		if n, ok := digit(msg, games.PadCount); ok {
			b.cursor = n
			return games.Press{Pad: n}, true
		}
		b.cursor = moveGrid(keys, msg, b.cursor, games.PadCount, simonCols)
		if key.Matches(msg, keys.Enter) {
			return games.Press{Pad: b.cursor}, true
		}
	case *games.RoutineChallenge:
		return b.handleRoutine(keys, msg, len(ch.Start))
	}
	return nil, false
}

func (b *board) handleClock(keys keyMap, msg tea.KeyMsg) (games.Input, bool) {
	switch {
	case key.Matches(msg, keys.Up):
		b.hour = b.hour%12 + 1
	case key.Matches(msg, keys.Down):
		b.hour = (b.hour+10)%12 + 1
	case key.Matches(msg, keys.Right):
		b.minute = (b.minute + 5) % 60
	case key.Matches(msg, keys.Left):
		b.minute = (b.minute + 55) % 60
	case key.Matches(msg, keys.Enter):
		return games.SetTime{Hour: b.hour, Minute: b.minute}, true
	}
	return nil, false
}

func (b *board) handleOptions(keys keyMap, msg tea.KeyMsg, n int) (games.Input, bool) {
	if i, ok := digit(msg, n); ok {
		b.cursor = i
		return games.Choose{Option: i}, true
	}
	b.cursor = moveGrid(keys, msg, b.cursor, n, n)
	if key.Matches(msg, keys.Enter) {
		return games.Choose{Option: b.cursor}, true
	}
	return nil, false
}

func (b *board) handleShapes(keys keyMap, msg tea.KeyMsg, c *games.ShapesChallenge) (games.Input, bool) {
	n := len(c.Pieces)
	switch {
	case key.Matches(msg, keys.Switch):
		b.slots = !b.slots
	case key.Matches(msg, keys.Rotate):
		return games.Rotate{}, true
	case key.Matches(msg, keys.Enter):
		if !b.slots {
			b.slots = true
			return games.Select{Piece: b.cursor}, true
		}
		b.slots = false
		return games.Place{Target: c.Targets[b.slot]}, true
	case b.slots:
		b.slot = moveGrid(keys, msg, b.slot, n, n)
	default:
		b.cursor = moveGrid(keys, msg, b.cursor, n, n)
	}
	return nil, false
}

func (b *board) handleRoutine(keys keyMap, msg tea.KeyMsg, n int) (games.Input, bool) {
	delta := 0
	switch {
	case key.Matches(msg, keys.Grab):
		if b.held >= 0 {
			b.held = -1
		} else {
			b.held = b.cursor
		}
		return nil, false
	case key.Matches(msg, keys.Submit):
		b.held = -1
		return games.Submit{}, true
	case key.Matches(msg, keys.Up):
		delta = -1
	case key.Matches(msg, keys.Down):
		delta = 1
	default:
		return nil, false
	}
	to := b.cursor + delta
	if to < 0 || to >= n {
		return nil, false
	}
	from := b.cursor
	b.cursor = to
	if b.held < 0 {
		return nil, false
	}
	b.held = to
	return games.Move{From: from, To: to}, true
}

// moveGrid moves cur across a row-major grid of n cells.
func moveGrid(keys keyMap, msg tea.KeyMsg, cur, n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	next := cur
	switch {
	case key.Matches(msg, keys.Left):
		next--
	case key.Matches(msg, keys.Right):
		next++
	case key.Matches(msg, keys.Up):
		next -= cols
	case key.Matches(msg, keys.Down):
		next += cols
	default:
		return cur
	}
	if next < 0 || next >= n {
		return cur
	}
	return next
}

// digit parses keys 1..n into a zero-based index.
func digit(msg tea.KeyMsg, n int) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	v, err := strconv.Atoi(string(msg.Runes))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
