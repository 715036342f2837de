// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPicker lists categories.
	ViewPicker ViewType = iota
	// ViewKeywords is the keyword table for one category.
	ViewKeywords
	// ViewHelp lists keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPicker:
		return "picker"
	case ViewKeywords:
		return "keywords"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// CategoriesLoaded carries the category tree.
type CategoriesLoaded struct {
	Tree *domain.CategoryTree
	Err  error
}

// CategorySelected asks for a category's keywords to be loaded.
type CategorySelected struct {
	ID   string
	Name string
}

// DatasetLoaded signals that a load finished.
// The browser has already discarded stale results, so views re-read its snapshot.
type DatasetLoaded struct {
	CategoryID string
	Err        error
}

// MoreLoaded signals that a load-more step finished.
type MoreLoaded struct {
	// Grew is false when the view changed while loading, or nothing was left.
	Grew bool
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
