package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/senobi/internal/round"
)

// timerMsg delivers a scheduled round callback back into Update.
type timerMsg struct {
	id uint64
}

// tickScheduler turns round timers into tea.Tick commands, so every callback
// runs inside Update on the program goroutine.
type tickScheduler struct {
	next   uint64
	live   map[uint64]func()
	queued []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{live: map[uint64]func(){}}
}

type tickTimer struct {
	s  *tickScheduler
	id uint64
}

func (t tickTimer) Stop() { delete(t.s.live, t.id) }

// After implements round.Scheduler.
func (s *tickScheduler) After(d time.Duration, fn func()) round.Timer {
	s.next++
	id := s.next
	s.live[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return tickTimer{s: s, id: id}
}

// Fire runs the callback for id unless it was stopped.
func (s *tickScheduler) Fire(id uint64) bool {
	fn, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	fn()
	return true
}

// Drain returns the ticks scheduled since the previous call.
func (s *tickScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of live timers.
func (s *tickScheduler) Pending() int { return len(s.live) }
