package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/logger"
)

//go:embed categories.toml
var defaultCatalog []byte

// Ensure Catalog implements the interface.
var _ driven.CategoryCatalog = (*Catalog)(nil)

type node struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Children []node `toml:"children"`
}

type file struct {
	Categories []node `toml:"category"`
}

// Catalog loads the taxonomy once and serves it from memory.
type Catalog struct {
	path string

	once sync.Once
	tree *domain.CategoryTree
	err  error
}

// New creates a catalog. An empty path selects the embedded taxonomy.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Tree returns the validated category tree.
func (c *Catalog) Tree(_ context.Context) (*domain.CategoryTree, error) {
	c.once.Do(func() {
		data := defaultCatalog
		source := "embedded"
		if c.path != "" {
			raw, err := os.ReadFile(c.path)
			if err != nil {
				c.err = fmt.Errorf("reading catalog: %w", err)
				return
			}
			data, source = raw, c.path
		}

		c.tree, c.err = Parse(data)
		if c.err == nil {
			logger.Debug("loaded %d categories from %s catalog", c.tree.Len(), source)
		}
	})
	return c.tree, c.err
}

// Parse decodes a TOML taxonomy and validates it.
func Parse(data []byte) (*domain.CategoryTree, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCategoryTree, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", domain.ErrInvalidCategoryTree)
	}

	roots := make([]*domain.Category, len(f.Categories))
	for i, n := range f.Categories {
		roots[i] = n.toDomain()
	}

	tree := domain.NewCategoryTree(roots)
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (n node) toDomain() *domain.Category {
	c := &domain.Category{ID: n.ID, Name: n.Name}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.toDomain())
	}
	return c
}
