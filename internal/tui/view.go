package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/round"
)

const cellWidth = 4

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).Underline(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	litStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	bannerStyle = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#C89A3A"))
	padColors   = []string{"#e53935", "#43a047", "#1e88e5", "#fdd835"}
	padLabels   = []string{"RED", "GREEN", "BLUE", "YELLOW"}
	hiddenCard  = "▒▒"
)

// cell pads s to cellWidth display columns and marks the cursor.
func cell(s string, selected bool) string {
	s = runewidth.FillRight(s, cellWidth-2)
	if selected {
		return cursorStyle.Render("[" + s + "]")
	}
	return " " + s + " "
}

func grid(cells []string, cols int) string {
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		rows = append(rows, strings.Join(cells[i:end], " "))
	}
	return strings.Join(rows, "\n")
}

func renderBoard(m *round.Machine, b board, now time.Time) string {
	switch c := m.Challenge().(type) {
	case *games.ClockChallenge:
		return renderClock(c, b)
	case *games.PairsChallenge:
		return renderPairs(c, m.Play().(*games.PairsPlay), b)
	case *games.PatternsChallenge:
		return renderPatterns(c, b)
	case *games.StroopChallenge:
		return renderStroop(c, m.Play().(*games.StroopPlay), b, m, now)
	case *games.ShapesChallenge:
		return renderShapes(c, m.Play().(*games.ShapesPlay), b)
	case *games.OddOneOutChallenge:
		return renderOddOneOut(c, b)
	case *games.SimonChallenge:
		return renderSimon(c, m.Play().(*games.SimonPlay), b, m)
	case *games.RoutineChallenge:
		return renderRoutine(m.Play().(*games.RoutinePlay), b)
	default:
		return ""
	}
}

func renderClock(c *games.ClockChallenge, b board) string {
	return strings.Join([]string{
		fmt.Sprintf("Target   %s", titleStyle.Render(fmt.Sprintf("%d:%02d", c.Hour, c.Minute))),
		fmt.Sprintf("Your dial %s", textStyle.Render(fmt.Sprintf("%2d:%02d", b.hour, b.minute))),
		mutedStyle.Render(fmt.Sprintf("Tolerance ±%d min", c.Tolerance)),
	}, "\n")
}

func renderPairs(c *games.PairsChallenge, p *games.PairsPlay, b board) string {
	cells := make([]string, len(c.Cards))
	for i, card := range c.Cards {
		face := hiddenCard
		if p.FaceUp(i) {
			face = card.Face
		}
		s := cell(face, i == b.cursor)
		if p.Matched(i) && i != b.cursor {
			s = mutedStyle.Render(s)
		}
		cells[i] = s
	}
	status := mutedStyle.Render(fmt.Sprintf("Pairs %d/%d · Moves %d", p.Found(), c.Pairs(), p.Moves()))
	return grid(cells, pairsCols) + "\n\n" + status
}

func renderOptions(labels []string, cursor int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%d %s", i+1, cell(label, i == cursor))
	}
	return strings.Join(parts, "  ")
}

func renderPatterns(c *games.PatternsChallenge, b board) string {
	seq := make([]string, len(c.Sequence))
	for i, s := range c.Sequence {
		if s == games.Placeholder {
			s = titleStyle.Render(s)
		}
		seq[i] = s
	}
	return strings.Join(seq, "  ") + "\n\n" + renderOptions(c.Options, b.cursor)
}

func renderStroop(c *games.StroopChallenge, p *games.StroopPlay, b board, m *round.Machine, now time.Time) string {
	var lines []string
	if prompt, ok := p.Current(); ok {
		label := c.Palette[prompt.Label].Name
		ink := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Palette[prompt.Ink].Hex)).Bold(true)
		lines = append(lines, ink.Render(label))
	}
	names := make([]string, len(c.Palette))
	for i, color := range c.Palette {
		names[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex)).Render(strings.ToLower(color.Name))
	}
	parts := make([]string, len(names))
	for i, name := range names {
		marker := " "
		if i == b.cursor {
			marker = cursorStyle.Render("›")
		}
		parts[i] = fmt.Sprintf("%s%d %s", marker, i+1, name)
	}
	lines = append(lines, "", strings.Join(parts, "  "))
	status := fmt.Sprintf("Word %d/%d · Correct %d", min(p.Index()+1, len(c.Prompts)), len(c.Prompts), p.Correct())
	if deadline, ok := m.Deadline(); ok {
		left := deadline.Sub(now).Round(100 * time.Millisecond)
		status += " · " + badStyle.Render(fmt.Sprintf("%.1fs", max(0, left.Seconds())))
	}
	lines = append(lines, "", mutedStyle.Render(status))
	return strings.Join(lines, "\n")
}

func renderShapes(c *games.ShapesChallenge, p *games.ShapesPlay, b board) string {
	pieces := make([]string, len(c.Pieces))
	for i, glyph := range c.Pieces {
		label := glyph
		if p.Placed(i) {
			label = ""
		}
		s := cell(label, !b.slots && i == b.cursor)
		if i == p.Active() {
			s = goodStyle.Render(s)
		}
		angle := ""
		if c.Rotation && !p.Placed(i) {
			angle = fmt.Sprintf("%d°", p.Angle(i))
		}
		pieces[i] = s + mutedStyle.Render(runewidth.FillRight(angle, 4))
	}
	slots := make([]string, len(c.Targets))
	for j, id := range c.Targets {
		s := cell(c.Pieces[id], b.slots && j == b.slot)
		if !p.Placed(id) && !(b.slots && j == b.slot) {
			s = mutedStyle.Faint(true).Render(s)
		}
		slots[j] = s
	}
	return strings.Join([]string{
		mutedStyle.Render("Pieces"),
		strings.Join(pieces, " "),
		"",
		mutedStyle.Render("Silhouettes"),
		strings.Join(slots, " "),
	}, "\n")
}

func renderOddOneOut(c *games.OddOneOutChallenge, b board) string {
	cells := make([]string, c.Cells())
	for i := range cells {
		cells[i] = cell(c.Cell(i), i == b.cursor)
	}
	return grid(cells, c.Side)
}

func renderSimon(c *games.SimonChallenge, p *games.SimonPlay, b board, m *round.Machine) string {
	cells := make([]string, games.PadCount)
	for i := range cells {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(padColors[i])).Width(8).Align(lipgloss.Center)
		label := fmt.Sprintf("%d %s", i+1, padLabels[i])
		switch {
		case m.Lit() == i:
			style = style.Inherit(litStyle)
		case i == b.cursor && m.Phase() == round.AwaitingInput:
			style = style.Underline(true)
		}
		cells[i] = style.Render(label)
	}
	status := fmt.Sprintf("Step %d/%d", p.Position(), len(c.Sequence()))
	if m.Phase() == round.Presenting {
		status = "Watch the sequence..."
	}
	return grid(cells, simonCols) + "\n\n" + mutedStyle.Render(status)
}

func renderRoutine(p *games.RoutinePlay, b board) string {
	order := p.Order()
	lines := make([]string, len(order))
	for i, step := range order {
		marker := "  "
		if i == b.cursor {
			marker = cursorStyle.Render("› ")
		}
		text := fmt.Sprintf("%d. %s", i+1, step)
		switch {
		case i == b.held:
			text = goodStyle.Render(text + " ⇅")
		case i == b.cursor:
			text = textStyle.Render(text)
		default:
			text = mutedStyle.Render(text)
		}
		lines[i] = marker + text
	}
	return strings.Join(lines, "\n")
}
