// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/verte-zerg/senobi/internal/adaptive"
	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/generator"
	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/results"
	"github.com/verte-zerg/senobi/internal/round"
	"github.com/verte-zerg/senobi/internal/session"
	"github.com/verte-zerg/senobi/internal/stats"
	"github.com/verte-zerg/senobi/internal/statsui"
)

const (
	frameInterval = 100 * time.Millisecond
	maxTextWidth  = 72
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenStats
)

// frameMsg redraws the countdown of a timed round.
type frameMsg struct{}

// Options configures the game UI.
type Options struct {
	Pipeline *session.Pipeline
	// Journal feeds the curves on the stats screen. It may be nil.
	Journal stats.Journal
	Config  model.PlayConfig
	Logger  *zap.Logger
	// Bell receives the terminal bell when sounds are on.
	Bell io.Writer
}

// Model implements the Bubble Tea game UI.
type Model struct {
	pipeline *session.Pipeline
	journal  stats.Journal
	cfg      model.PlayConfig
	logger   *zap.Logger
	bell     io.Writer
	catalog  []games.Game
	gen      *generator.Generator
	sched    *tickScheduler
	keys     keyMap
	help     help.Model
	now      func() time.Time

	screen     screen
	menuCursor int
	difficulty model.Difficulty

	machine *round.Machine
	board   board
	update  *session.Update
	totals  model.StatsState
	framing bool

	stats *statsui.Model

	width  int
	height int
}

// NewModel constructs the game UI. When cfg.Game is set the model opens
// straight on that game.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	m := &Model{
		pipeline:   opts.Pipeline,
		journal:    opts.Journal,
		cfg:        cfg,
		logger:     opts.Logger,
		bell:       opts.Bell,
		catalog:    games.Catalog(games.Options{Timing: cfg.Timing, RoutineSteps: cfg.RoutineSteps}),
		sched:      newTickScheduler(),
		keys:       defaultKeys(),
		help:       help.New(),
		now:        time.Now,
		difficulty: cfg.Difficulty,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if !m.difficulty.Valid() {
		m.difficulty = model.Easy
	}
	if cfg.Seed != 0 {
		m.gen = generator.NewSeeded(cfg.Seed)
	} else {
		m.gen = generator.New()
	}
	m.totals = m.pipeline.Stats(context.Background())
	if cfg.Game != "" {
		for i, g := range m.catalog {
			if g.ID() == cfg.Game {
				m.menuCursor = i
				m.startGame(i)
				break
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.afterPlay()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.stats != nil {
			m.stats.Update(msg)
		}
		return m, nil
	case timerMsg:
		m.sched.Fire(msg.id)
		return m, m.afterPlay()
	case frameMsg:
		m.framing = false
		return m, m.afterPlay()
	case statsui.CloseMsg:
		m.screen = screenMenu
		m.stats = nil
		return m, nil
	case statsui.ResetMsg:
		m.update = nil
		m.totals = msg.State
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.leaveRound()
			return m, tea.Quit
		}
		switch m.screen {
		case screenPlay:
			return m.updatePlay(msg)
		case screenStats:
			_, cmd := m.stats.Update(msg)
			return m, cmd
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + len(m.catalog) - 1) % len(m.catalog)
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % len(m.catalog)
	case key.Matches(msg, m.keys.Difficulty):
		m.difficulty = cycleDifficulty(m.difficulty)
	case key.Matches(msg, m.keys.Stats):
		m.openStats()
	case key.Matches(msg, m.keys.Enter):
		m.startGame(m.menuCursor)
		return m, m.afterPlay()
	}
	return m, nil
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveRound()
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, m.keys.NewRound):
		m.resetRound()
		m.machine.Restart()
	case key.Matches(msg, m.keys.Difficulty):
		m.difficulty = cycleDifficulty(m.difficulty)
		m.resetRound()
		m.machine.SetDifficulty(m.difficulty)
	case key.Matches(msg, m.keys.Suggest) && m.suggestion() != adaptive.None:
		m.difficulty = m.suggestion().Target(m.difficulty)
		m.resetRound()
		m.machine.SetDifficulty(m.difficulty)
	case m.machine.Phase() == round.AwaitingInput:
		if in, ok := m.board.handle(m.keys, msg, m.machine.Challenge()); ok {
			m.machine.Act(in)
		}
	}
	return m, m.afterPlay()
}

func (m *Model) startGame(i int) {
	m.leaveRound()
	m.machine = round.New(m.catalog[i], m.difficulty, round.Options{
		Scheduler:        m.sched,
		Generator:        m.gen,
		Effects:          bellEffects{out: m.bell, sounds: m.cfg.Sounds},
		Logger:           m.logger,
		PlaybackInterval: m.cfg.Timing.PlaybackInterval,
		PulseDuration:    m.cfg.Timing.PulseDuration,
		OnComplete:       m.record,
	})
	m.screen = screenPlay
	m.resetRound()
	m.machine.Start()
}

func (m *Model) resetRound() {
	m.board = newBoard()
	m.update = nil
}

func (m *Model) leaveRound() {
	if m.machine != nil {
		m.machine.Cancel()
	}
}

// record runs the results pipeline for a completed round.
func (m *Model) record(c round.Closure) {
	u := m.pipeline.Save(context.Background(), results.Record(c))
	m.update = &u
	m.totals = u.Stats
}

func (m *Model) suggestion() adaptive.Suggestion {
	if m.update == nil {
		return adaptive.None
	}
	return m.update.Suggestion
}

func (m *Model) openStats() {
	m.stats = statsui.NewModel(m.pipeline, m.journal)
	if m.width > 0 && m.height > 0 {
		m.stats.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	m.screen = screenStats
}

// afterPlay collects the timers scheduled by the last step and keeps the
// countdown redrawing while a time limit runs.
func (m *Model) afterPlay() tea.Cmd {
	cmds := []tea.Cmd{m.sched.Drain()}
	if m.screen == screenPlay && m.machine != nil && !m.framing {
		if _, ok := m.machine.Deadline(); ok {
			m.framing = true
			cmds = append(cmds, tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} }))
		}
	}
	return tea.Batch(cmds...)
}

func cycleDifficulty(d model.Difficulty) model.Difficulty {
	if d == model.Hard {
		return model.Easy
	}
	return d.Harder()
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenStats:
		return m.stats.View()
	case screenPlay:
		return m.layout(m.renderPlay(), m.renderPlayHelp())
	default:
		return m.layout(m.renderMenu(), m.help.ShortHelpView([]key.Binding{
			m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Difficulty, m.keys.Stats, m.keys.Back,
		}))
	}
}

func (m *Model) layout(content, hint string) string {
	footer := m.renderFooter()
	if footer != "" {
		hint = footer + "\n" + hint
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + hint
	}
	helpHeight := lipgloss.Height(hint)
	if m.height <= helpHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-helpHeight, lipgloss.Center, lipgloss.Center, content)
	bottom := lipgloss.Place(m.width, helpHeight, lipgloss.Center, lipgloss.Center, hint)
	return body + "\n" + bottom
}

func (m *Model) textWidth() int {
	if m.width <= 0 {
		return maxTextWidth
	}
	return max(20, min(maxTextWidth, m.width-4))
}

func (m *Model) renderMenu() string {
	lines := []string{
		titleStyle.Render("senobi") + mutedStyle.Render("  brain games"),
		mutedStyle.Render("Difficulty: ") + textStyle.Render(m.difficulty.Label()),
		"",
	}
	for i, g := range m.catalog {
		info := g.Info()
		marker := "  "
		title := textStyle.Render(info.Title)
		if i == m.menuCursor {
			marker = cursorStyle.Render("› ")
			title = titleStyle.Render(info.Title)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  %s", marker, info.Icon, title, mutedStyle.Render(info.Summary)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPlay() string {
	if m.machine == nil {
		return ""
	}
	info := m.machine.Game().Info()
	header := fmt.Sprintf("%s %s  %s", info.Icon, titleStyle.Render(info.Title), mutedStyle.Render(m.machine.Difficulty().Label()))
	lines := []string{
		header,
		mutedStyle.Render(wordwrap.String(info.Instructions, m.textWidth())),
		"",
		renderBoard(m.machine, m.board, m.now()),
		"",
	}
	if fb := m.machine.Feedback(); fb != "" {
		lines = append(lines, textStyle.Render(fb))
	}
	if m.machine.Phase() == round.Complete {
		lines = append(lines, "", m.renderResult())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResult() string {
	if m.update == nil {
		return ""
	}
	r := m.update.Result
	headline := badStyle.Render("Round over.")
	if r.Won {
		headline = goodStyle.Render("🎉 Well done!")
	}
	lines := []string{
		headline,
		fmt.Sprintf("Score %d · Accuracy %d%% · %.1fs · %d attempts", r.Score, r.Accuracy, float64(r.TimeMs)/1000, r.Attempts),
	}
	for _, a := range m.update.Fresh {
		lines = append(lines, titleStyle.Render(fmt.Sprintf("%s Unlocked: %s", a.Icon, a.Title)))
	}
	if s := m.update.Suggestion; s != adaptive.None {
		lines = append(lines, textStyle.Render(wordwrap.String(
			fmt.Sprintf("%s Press + for %s.", s.Message(), s.Target(m.difficulty).Label()), m.textWidth())))
	}
	lines = append(lines, mutedStyle.Render("n: play again · esc: menu"))
	return bannerStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlayHelp() string {
	bindings := []key.Binding{m.keys.NewRound, m.keys.Difficulty, m.keys.Back}
	if m.machine == nil {
		return m.help.ShortHelpView(bindings)
	}
	switch m.machine.Challenge().(type) {
	case *games.ShapesChallenge:
		bindings = append([]key.Binding{m.keys.Enter, m.keys.Rotate, m.keys.Switch}, bindings...)
	case *games.RoutineChallenge:
		bindings = append([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Grab, m.keys.Submit}, bindings...)
	default:
		bindings = append([]key.Binding{m.keys.Left, m.keys.Right, m.keys.Enter}, bindings...)
	}
	return m.help.ShortHelpView(bindings)
}

func (m *Model) renderFooter() string {
	if m.totals.TotalPlayed == 0 {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Played %d", m.totals.TotalPlayed),
		fmt.Sprintf("Won %d%%", stats.WinRate(m.totals.TotalWins, m.totals.TotalPlayed)),
		fmt.Sprintf("Best streak %d", stats.BestStreak(m.totals)),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
