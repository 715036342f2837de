package mcp

import (
	"context"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// mockKeywordService is a mock implementation of driving.KeywordService.
type mockKeywordService struct {
	page  *domain.KeywordPage
	err   error
	query domain.KeywordQuery
}

func (m *mockKeywordService) Query(_ context.Context, q domain.KeywordQuery) (*domain.KeywordPage, error) {
	m.query = q
	return m.page, m.err
}

func (m *mockKeywordService) Invalidate(_ context.Context, _ string) error {
	return m.err
}

// mockCategoryService is a mock implementation of driving.CategoryService.
type mockCategoryService struct {
	tree *domain.CategoryTree
	err  error
}

func (m *mockCategoryService) Tree(_ context.Context) (*domain.CategoryTree, error) {
	return m.tree, m.err
}

func (m *mockCategoryService) Find(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := m.tree.Find(id); ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCategoryService) NameOf(_ context.Context, id string) string {
	return m.tree.NameOf(id)
}

func sampleTree() *domain.CategoryTree {
	return domain.NewCategoryTree([]*domain.Category{
		{ID: "fashion", Name: "Fashion", Children: []*domain.Category{
			{ID: "fashion-shoes", Name: "Shoes"},
			{ID: "fashion-bags", Name: "Bags"},
		}},
		{ID: "beauty", Name: "Beauty"},
	})
}

func newTestServer(kw *mockKeywordService) *Server {
	server, err := NewServer(&Ports{
		Keywords:   kw,
		Categories: &mockCategoryService{tree: sampleTree()},
	}, "test")
	if err != nil {
		panic(err)
	}
	return server
}
