// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// CategoryList displays the category tree as an indented, navigable list.
type CategoryList struct {
	items    []*domain.Category
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCategoryList creates a new category list component.
func NewCategoryList(s *styles.Styles) *CategoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CategoryList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the category list.
func (c *CategoryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CategoryList) Update(msg tea.Msg) (*CategoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		case "home", "g":
			c.selected = 0
		case "end", "G":
			c.selected = max(0, len(c.items)-1)
		}
	}
	return c, nil
}

// View renders the visible part of the list around the selection.
func (c *CategoryList) View() string {
	if len(c.items) == 0 {
		return c.styles.Muted.Render("No categories")
	}

	visible := max(1, c.height)
	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := min(start+visible, len(c.items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, c.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (c *CategoryList) renderItem(index int) string {
	cat := c.items[index]
	indent := strings.Repeat("  ", cat.Level-1)
	label := indent + cat.Name

	maxLen := max(10, c.width-4)
	if len([]rune(label)) > maxLen {
		label = string([]rune(label)[:maxLen-3]) + "..."
	}

	if index == c.selected {
		return c.styles.Selected.Render("> " + label)
	}
	if cat.IsRoot() {
		return "  " + c.styles.Subtitle.Render(label)
	}
	return "  " + c.styles.Normal.Render(label)
}

// SetTree replaces the items with the tree in depth-first order.
func (c *CategoryList) SetTree(tree *domain.CategoryTree) {
	c.items = nil
	c.selected = 0
	if tree == nil {
		return
	}
	tree.Walk(func(cat *domain.Category) bool {
		c.items = append(c.items, cat)
		return true
	})
}

// Items returns the listed categories.
func (c *CategoryList) Items() []*domain.Category {
	return c.items
}

// Selected returns the index of the selected category.
func (c *CategoryList) Selected() int {
	return c.selected
}

// SelectID moves the selection to the category with the given ID.
func (c *CategoryList) SelectID(id string) bool {
	for i, cat := range c.items {
		if cat.ID == id {
			c.selected = i
			return true
		}
	}
	return false
}

// SelectedCategory returns the selected category, or nil if the list is empty.
func (c *CategoryList) SelectedCategory() *domain.Category {
	if c.selected < 0 || c.selected >= len(c.items) {
		return nil
	}
	return c.items[c.selected]
}

// MoveUp moves selection up.
func (c *CategoryList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CategoryList) MoveDown() {
	if c.selected < len(c.items)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CategoryList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of categories.
func (c *CategoryList) Count() int {
	return len(c.items)
}

// IsEmpty returns whether the list is empty.
func (c *CategoryList) IsEmpty() bool {
	return len(c.items) == 0
}
