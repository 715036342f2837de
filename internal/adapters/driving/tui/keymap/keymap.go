// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	// Back leaves the filter input, or returns to the category picker.
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Filter focuses the text filter.
	Filter key.Binding

	// Brand, SearchType and Competition cycle their inclusion filters.
	Brand       key.Binding
	SearchType  key.Binding
	Competition key.Binding

	// Volume cycles through the volume presets.
	Volume key.Binding

	// Sort selects a column by its number.
	Sort key.Binding

	// Reset clears every filter.
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Brand: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "brand"),
		),
		SearchType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		Competition: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "competition"),
		),
		Volume: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "volume"),
		),
		Sort: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "sort"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// TableHelp returns keybindings for the keyword table.
func (k *KeyMap) TableHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Sort, k.Volume, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Filter, k.Brand, k.SearchType, k.Competition, k.Volume, k.Reset},
		{k.Sort, k.Help, k.Quit},
	}
}

// SortKeyFor maps a number key to the table column it sorts.
func SortKeyFor(keyStr string) (domain.SortKey, bool) {
	keys := domain.AllSortKeys()
	if len(keyStr) != 1 || keyStr[0] < '1' || int(keyStr[0]-'1') >= len(keys) {
		return "", false
	}
	return keys[keyStr[0]-'1'], true
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
