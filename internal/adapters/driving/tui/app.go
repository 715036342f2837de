package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/views/keywords"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/views/picker"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	pickerView   *picker.View
	keywordsView *keywords.View

	// currentView tracks which view is active; previousView is restored
	// when the help view closes.
	currentView  messages.ViewType
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		pickerView:   picker.NewView(s, ports.Categories),
		keywordsView: keywords.NewView(s, km, ports.Browser, ports.ScrollThreshold),
		currentView:  messages.ViewPicker,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.pickerView.WithContext(ctx)
	a.keywordsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the categories and, when configured, opens the initial category.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("kwscope - Keyword Analysis"),
		a.pickerView.Init(),
	}
	if id := a.ports.InitialCategory; id != "" {
		ctx, categories := a.ctx, a.ports.Categories
		cmds = append(cmds, func() tea.Msg {
			return messages.CategorySelected{ID: id, Name: categories.NameOf(ctx, id)}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.CategorySelected:
		a.currentView = messages.ViewKeywords
		a.pickerView.SetCurrent(msg.ID)
		return a, a.keywordsView.Load(msg.ID, msg.Name)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.CategoriesLoaded:
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	// Load results and spinner ticks belong to the keyword view even
	// while another view is on screen.
	case messages.DatasetLoaded, messages.MoreLoaded, spinner.TickMsg:
		a.keywordsView, cmd = a.keywordsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(keyStr, a.keymap.Help) || keymap.Matches(keyStr, a.keymap.Back) ||
			keymap.Matches(keyStr, a.keymap.Quit) {
			a.currentView = a.previousView
		}
		return a, nil
	}

	// While the filter input has focus every key is text.
	typing := a.currentView == messages.ViewKeywords && a.keywordsView.FilterFocused()
	if !typing {
		switch {
		case keymap.Matches(keyStr, a.keymap.Help):
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Quit):
			return a, tea.Quit
		}
	}

	switch a.currentView {
	case messages.ViewPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
	case messages.ViewKeywords:
		a.keywordsView, cmd = a.keywordsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewKeywords:
		return a.keywordsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.pickerView.View()
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.keymap))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Sort keys: 1 keyword · 2 volume · 3 products · 4 competition · 5 brand · 6 type"))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("Press a sort key again to reverse it. More rows load as you scroll."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.pickerView.SetDimensions(width, height)
	a.keywordsView.SetDimensions(width, height)
}
