package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

func TestCategoryService_Tree(t *testing.T) {
	s := NewCategoryService(newMockCatalog())

	tree, err := s.Tree(context.Background())

	require.NoError(t, err)
	assert.Len(t, tree.Roots(), 2)
}

func TestCategoryService_Find(t *testing.T) {
	s := NewCategoryService(newMockCatalog())

	c, err := s.Find(context.Background(), "fashion-shoes")
	require.NoError(t, err)
	assert.Equal(t, "Shoes", c.Name)
	assert.Equal(t, 2, c.Level)

	_, err = s.Find(context.Background(), "garden")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryService_NameOf(t *testing.T) {
	s := NewCategoryService(newMockCatalog())

	assert.Equal(t, "Beauty", s.NameOf(context.Background(), "beauty"))
	assert.Equal(t, "", s.NameOf(context.Background(), "garden"))
}

func TestCategoryService_CatalogError(t *testing.T) {
	boom := errors.New("unreadable")
	s := NewCategoryService(&mockCatalog{err: boom})

	_, err := s.Tree(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = s.Find(context.Background(), "beauty")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, "", s.NameOf(context.Background(), "beauty"))
}
