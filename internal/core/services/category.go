package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// Ensure CategoryService implements the interface.
var _ driving.CategoryService = (*CategoryService)(nil)

// CategoryService exposes the category taxonomy.
type CategoryService struct {
	catalog driven.CategoryCatalog
}

// NewCategoryService creates a new category service.
func NewCategoryService(catalog driven.CategoryCatalog) *CategoryService {
	return &CategoryService{catalog: catalog}
}

// Tree returns the full category tree.
func (s *CategoryService) Tree(ctx context.Context) (*domain.CategoryTree, error) {
	tree, err := s.catalog.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return tree, nil
}

// Find looks up a category.
func (s *CategoryService) Find(ctx context.Context, id string) (*domain.Category, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := tree.Find(id)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// NameOf returns the display name, or "" when the category does not exist
// or the catalog cannot be read.
func (s *CategoryService) NameOf(ctx context.Context, id string) string {
	tree, err := s.catalog.Tree(ctx)
	if err != nil {
		return ""
	}
	return tree.NameOf(id)
}
