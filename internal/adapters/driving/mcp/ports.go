package mcp

import (
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Keywords answers keyword queries.
	Keywords driving.KeywordService

	// Categories exposes the taxonomy.
	Categories driving.CategoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Keywords == nil {
		return ErrMissingKeywordService
	}
	if p.Categories == nil {
		return ErrMissingCategoryService
	}
	return nil
}
