package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Grab       key.Binding
	Rotate     key.Binding
	Switch     key.Binding
	Submit     key.Binding
	NewRound   key.Binding
	Difficulty key.Binding
	Suggest    key.Binding
	Stats      key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Grab:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		Rotate:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		Switch:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pieces/slots")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		NewRound:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new round")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Suggest:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "take suggestion")),
		Stats:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Back:       key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
