// Package tui provides an interactive terminal user interface for kwscope.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// Ports aggregates the driving ports and settings the TUI needs.
type Ports struct {
	// Categories lists the taxonomy for the picker.
	Categories driving.CategoryService

	// Browser holds the keyword table session.
	Browser driving.KeywordBrowser

	// ScrollThreshold is how many rows from the end the cursor must be
	// before more rows are requested.
	ScrollThreshold int

	// InitialCategory is opened on start when set.
	InitialCategory string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Categories == nil {
		return ErrMissingCategoryService
	}
	if p.Browser == nil {
		return ErrMissingBrowser
	}
	return nil
}
