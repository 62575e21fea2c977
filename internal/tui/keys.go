package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the application key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Open     key.Binding
	Back     key.Binding
	Quit     key.Binding
	Tab      key.Binding
	Refresh  key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	First    key.Binding
	Last     key.Binding
	Save     key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show record")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextPage: key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n/→", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("p", "left", "pgup"), key.WithHelp("p/←", "prev page")),
		First:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		Last:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		Save:     key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// screenHelp adapts a screen's bindings to help.KeyMap.
type screenHelp []key.Binding

// ShortHelp implements help.KeyMap.
func (s screenHelp) ShortHelp() []key.Binding { return s }

// FullHelp implements help.KeyMap.
func (s screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{s} }

// helpFor returns the bindings relevant to screen.
func (k KeyMap) helpFor(screen Screen) screenHelp {
	switch screen {
	case ScreenHome:
		return screenHelp{k.Up, k.Down, k.Enter, k.Quit}
	case ScreenGallery:
		return screenHelp{k.Up, k.Down, k.Tab, k.Enter, k.Refresh, k.Back, k.Quit}
	case ScreenImage:
		return screenHelp{k.Back, k.Quit}
	case ScreenReports:
		return screenHelp{k.Up, k.Down, k.Enter, k.Refresh, k.Back, k.Quit}
	case ScreenReport:
		return screenHelp{k.Up, k.Down, k.Open, k.NextPage, k.PrevPage, k.First, k.Last, k.Back, k.Quit}
	case ScreenRecord:
		return screenHelp{k.Up, k.Down, k.Back, k.Quit}
	case ScreenConfig:
		return screenHelp{k.Tab, k.Save, k.Back}
	default:
		return screenHelp{k.Quit}
	}
}
