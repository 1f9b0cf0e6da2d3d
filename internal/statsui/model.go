// Package statsui provides the Bubble Tea stats and achievements screen.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/senobi/internal/achievements"
	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/stats"
)

const (
	tabOverview = iota
	tabGames
	tabAchievements
	tabCurves
)

const (
	defaultCurveWindow = 5
	maxCurveWindow     = 30
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source provides the session state shown on the screen.
type Source interface {
	Stats(ctx context.Context) model.StatsState
	Achievements(ctx context.Context) []model.UnlockedAchievement
	ResetStats(ctx context.Context) model.StatsState
}

// CloseMsg asks the parent to leave the stats screen.
type CloseMsg struct{}

// ResetMsg reports that statistics were cleared.
type ResetMsg struct {
	State model.StatsState
}

type keyMap struct {
	Prev       key.Binding
	Next       key.Binding
	WindowUp   key.Binding
	WindowDown key.Binding
	Reset      key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Back       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		Next:       key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
		WindowUp:   key.NewBinding(key.WithKeys("="), key.WithHelp("-/=", "window")),
		WindowDown: key.NewBinding(key.WithKeys("-")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset stats")),
		Confirm:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Back:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back")),
	}
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	src     Source
	journal stats.Journal
	now     func() time.Time

	state    model.StatsState
	summary  stats.Summary
	unlocked []model.UnlockedAchievement
	report   stats.Report
	errMsg   string
	window   int

	tabs      []string
	activeTab int
	viewports []viewport.Model
	gameTable table.Model
	achTable  table.Model

	keys         keyMap
	help         help.Model
	confirmReset bool

	width  int
	height int
}

// NewModel constructs a stats UI model. journal may be nil, in which case
// the curves tab stays empty.
func NewModel(src Source, journal stats.Journal) *Model {
	m := &Model{
		src:     src,
		journal: journal,
		now:     time.Now,
		window:  defaultCurveWindow,
		tabs:    []string{"Overview", "Games", "Achievements", "Curves"},
		keys:    defaultKeys(),
		help:    help.New(),
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.gameTable = newTable(gameColumns(), nil, 1)
	m.achTable = newTable(achievementColumns(), nil, 1)
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Refresh reloads state from the source.
func (m *Model) Refresh() {
	ctx := context.Background()
	m.state = m.src.Stats(ctx)
	m.summary = stats.Summarize(m.state)
	m.unlocked = m.src.Achievements(ctx)
	m.refreshReport(ctx)
	m.gameTable.SetRows(gameRows(m.state))
	m.achTable.SetRows(achievementRows(m.unlocked, m.now()))
	m.renderTabContents()
}

func (m *Model) refreshReport(ctx context.Context) {
	m.errMsg = ""
	m.report = stats.Report{}
	if m.journal == nil {
		return
	}
	report, err := stats.BuildReport(ctx, m.journal, "", 0, m.window)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.report = report
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if m.confirmReset {
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.Prev):
			m.moveTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.moveTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.confirmReset = true
			return m, nil
		case key.Matches(msg, m.keys.WindowUp):
			m.window = min(maxCurveWindow, m.window+1)
			m.refreshReport(context.Background())
			m.renderTabContents()
			return m, nil
		case key.Matches(msg, m.keys.WindowDown):
			m.window = max(1, m.window-1)
			m.refreshReport(context.Background())
			m.renderTabContents()
			return m, nil
		}
		return m.updateActive(msg)
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirmReset = false
		state := m.src.ResetStats(context.Background())
		m.Refresh()
		return m, func() tea.Msg { return ResetMsg{State: state} }
	case key.Matches(msg, m.keys.Cancel):
		m.confirmReset = false
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabGames:
		m.gameTable, cmd = m.gameTable.Update(msg)
	case tabAchievements:
		m.achTable, cmd = m.achTable.Update(msg)
	default:
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	for _, t := range []*table.Model{&m.gameTable, &m.achTable} {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
	}
	m.help.Width = m.width
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	m.gameTable.Blur()
	m.achTable.Blur()
	switch m.activeTab {
	case tabGames:
		m.gameTable.Focus()
	case tabAchievements:
		m.achTable.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabGames:
		if len(m.state.Games) == 0 {
			return "No games played yet."
		}
		return tableMutedStyle.Render(m.gameTable.View())
	case tabAchievements:
		return tableMutedStyle.Render(m.achTable.View())
	default:
		return m.viewports[m.activeTab].View()
	}
}

func (m *Model) renderFooter() string {
	if m.confirmReset {
		return warnStyle.Render("Reset all statistics? Achievements are kept. (y/n)")
	}
	line := m.help.ShortHelpView([]key.Binding{m.keys.Prev, m.keys.Next, m.keys.WindowUp, m.keys.Reset, m.keys.Back})
	if m.errMsg != "" {
		return line + "\n" + warnStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return line
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.summary, m.now(), width))
	m.viewports[tabCurves].SetContent(m.renderCurves())
}

func renderOverview(s stats.Summary, now time.Time, width int) string {
	if s.Played == 0 {
		return "No games played yet. Pick a game from the menu."
	}
	cards := []string{
		metricCard("Games played", fmt.Sprintf("%d", s.Played)),
		metricCard("Win rate", fmt.Sprintf("%d%%", s.WinRate)),
		metricCard("Accuracy", fmt.Sprintf("%d%%", s.MeanAccuracy)),
		metricCard("Avg time", fmt.Sprintf("%.1fs", s.AvgTime.Seconds())),
		metricCard("Best streak", fmt.Sprintf("%d", s.BestStreak)),
		metricCard("Hard mode", fmt.Sprintf("%d%%", s.HardShare)),
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, card)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	var buf bytes.Buffer
	if err := stats.RenderCategories(&buf, s.Categories); err != nil {
		return fmt.Sprintf("Failed to render categories: %v", err)
	}
	lines := append(rows, "")
	if buf.Len() > 0 {
		lines = append(lines, cardTitleStyle.Render("By category (recent games)"), strings.TrimRight(buf.String(), "\n"), "")
	}
	if !s.LastPlayedAt.IsZero() {
		lines = append(lines, headerStyle.Render("Last played "+humanize.RelTime(s.LastPlayedAt, now, "ago", "from now")))
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderCurves() string {
	if m.journal == nil {
		return "No result history available."
	}
	if len(m.report.Results) < 2 {
		return "Play at least two games to see curves."
	}
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, m.report); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n" + headerStyle.Render(fmt.Sprintf("Moving average window: %d", m.window))
}

func gameColumns() []table.Column {
	return []table.Column{
		{Title: "Game", Width: 18},
		{Title: "Played", Width: 7},
		{Title: "Wins", Width: 5},
		{Title: "Win rate", Width: 9},
		{Title: "Accuracy", Width: 9},
		{Title: "Best", Width: 7},
		{Title: "Streak", Width: 7},
		{Title: "E/M/H", Width: 9},
	}
}

func gameRows(state model.StatsState) []table.Row {
	rows := stats.TopGames(state, len(state.Games))
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		by := state.Games[r.GameID].ByDifficulty
		out = append(out, table.Row{
			gameTitle(r.GameID),
			fmt.Sprintf("%d", r.Played),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d%%", r.WinRate),
			fmt.Sprintf("%d%%", r.AvgAccuracy),
			stats.FormatBest(r.BestTimeMs),
			fmt.Sprintf("%d", r.Streak),
			fmt.Sprintf("%d/%d/%d", by[model.Easy].Played, by[model.Medium].Played, by[model.Hard].Played),
		})
	}
	return out
}

func gameTitle(id string) string {
	for _, g := range games.Catalog(games.DefaultOptions()) {
		if g.ID() == id {
			return g.Info().Title
		}
	}
	return id
}

func achievementColumns() []table.Column {
	return []table.Column{
		{Title: "", Width: 3},
		{Title: "Achievement", Width: 14},
		{Title: "Goal", Width: 44},
		{Title: "Unlocked", Width: 16},
	}
}

func achievementRows(unlocked []model.UnlockedAchievement, now time.Time) []table.Row {
	defs := achievements.Definitions()
	out := make([]table.Row, 0, len(defs))
	for _, d := range defs {
		icon, when := "🔒", "-"
		for _, u := range unlocked {
			if u.ID == d.ID {
				icon = d.Icon
				when = humanize.RelTime(u.UnlockedAt, now, "ago", "from now")
				break
			}
		}
		out = append(out, table.Row{icon, d.Title, d.Description, when})
	}
	return out
}

func newTable(cols []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(max(1, height)),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
