// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// Bar displays the load state, result count and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	state       domain.LoadState
	message     string
	total       int
	visible     int
	loadingMore bool
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.LoadStateIdle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Sync
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case domain.LoadStateLoading:
		return s.styles.Muted.Render("Loading keywords...")
	case domain.LoadStateFailed:
		if s.message != "" {
			return s.styles.Error.Render("Load failed: " + s.message)
		}
		return s.styles.Error.Render("Load failed")
	case domain.LoadStateLoaded:
		text := s.styles.Normal.Render(fmt.Sprintf("%d results found", s.total))
		if s.visible < s.total {
			text += s.styles.Muted.Render(fmt.Sprintf(" (showing %d)", s.visible))
		}
		if s.loadingMore {
			text += s.styles.Muted.Render(" · loading more...")
		}
		return text
	default:
		return s.styles.Muted.Render("Pick a category")
	}
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == domain.LoadStateLoaded {
		bindings = s.keymap.TableHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Sync copies the display state from a view snapshot.
func (s *Bar) Sync(snap domain.ViewSnapshot) {
	s.state = snap.State
	s.total = snap.Total
	s.visible = snap.Visible
	s.loadingMore = snap.LoadingMore
	s.message = ""
	if snap.Err != nil {
		s.message = snap.Err.Error()
	}
}

// SetLoadingMore marks a load-more step as pending.
func (s *Bar) SetLoadingMore(loading bool) {
	s.loadingMore = loading
}

// State returns the current load state.
func (s *Bar) State() domain.LoadState {
	return s.state
}

// Message returns the failure message, if any.
func (s *Bar) Message() string {
	return s.message
}

// Total returns the number of results found.
func (s *Bar) Total() int {
	return s.total
}

// LoadingMore reports whether a load-more step is pending.
func (s *Bar) LoadingMore() bool {
	return s.loadingMore
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its idle state.
func (s *Bar) Clear() {
	s.Sync(domain.ViewSnapshot{State: domain.LoadStateIdle})
}
