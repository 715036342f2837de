// Package picker provides the category selection view for the TUI.
package picker

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// View lists categories and emits messages.CategorySelected on enter.
type View struct {
	styles     *styles.Styles
	list       *list.CategoryList
	categories driving.CategoryService
	ctx        context.Context

	// current is the category whose keywords were last opened.
	current string

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new picker view.
func NewView(s *styles.Styles, categories driving.CategoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		list:       list.NewCategoryList(s),
		categories: categories,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the category tree.
func (v *View) Init() tea.Cmd {
	return v.loadCategories()
}

func (v *View) loadCategories() tea.Cmd {
	if v.categories == nil {
		return nil
	}
	ctx := v.ctx
	categories := v.categories
	return func() tea.Msg {
		tree, err := categories.Tree(ctx)
		return messages.CategoriesLoaded{Tree: tree, Err: err}
	}
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CategoriesLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetTree(msg.Tree)
			v.list.SelectID(v.current)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cat := v.list.SelectedCategory()
			if cat == nil {
				return v, nil
			}
			v.current = cat.ID
			id, name := cat.ID, cat.Name
			return v, func() tea.Msg {
				return messages.CategorySelected{ID: id, Name: name}
			}
		case "q":
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("kwscope"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Keyword analysis by product category"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Could not load categories: " + v.err.Error()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(v.list.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open  [?] Help  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Title, subtitle and footer take six lines.
	v.list.SetDimensions(width, max(1, height-6))
}

// SetCurrent marks a category as the one on screen so the list returns to it.
func (v *View) SetCurrent(id string) {
	v.current = id
	v.list.SelectID(id)
}

// Selected returns the selected category ID, or "" when the list is empty.
func (v *View) Selected() string {
	if cat := v.list.SelectedCategory(); cat != nil {
		return cat.ID
	}
	return ""
}

// Count returns the number of listed categories.
func (v *View) Count() int {
	return v.list.Count()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
