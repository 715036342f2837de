package picker

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// MockCategoryService is a mock implementation of driving.CategoryService.
type MockCategoryService struct {
	tree *domain.CategoryTree
	err  error
}

func (m *MockCategoryService) Tree(_ context.Context) (*domain.CategoryTree, error) {
	return m.tree, m.err
}

func (m *MockCategoryService) Find(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := m.tree.Find(id); ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockCategoryService) NameOf(_ context.Context, id string) string {
	return m.tree.NameOf(id)
}

func sampleService() *MockCategoryService {
	return &MockCategoryService{tree: domain.NewCategoryTree([]*domain.Category{
		{ID: "fashion", Name: "Fashion", Children: []*domain.Category{
			{ID: "fashion-shoes", Name: "Shoes"},
		}},
		{ID: "beauty", Name: "Beauty"},
	})}
}

// loaded returns a sized view with its categories already delivered.
func loaded(t *testing.T, svc *MockCategoryService) *View {
	t.Helper()
	view := NewView(nil, svc)
	view.SetDimensions(80, 24)
	cmd := view.Init()
	require.NotNil(t, cmd)
	view.Update(cmd())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, sampleService())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.False(t, view.ready)
	assert.Equal(t, 0, view.Count())
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(nil, nil)

	assert.Nil(t, view.Init())
}

func TestView_Init_LoadsCategories(t *testing.T) {
	view := NewView(nil, sampleService())

	msg := view.Init()()

	loadedMsg, ok := msg.(messages.CategoriesLoaded)
	require.True(t, ok)
	assert.NoError(t, loadedMsg.Err)
	assert.Equal(t, 3, loadedMsg.Tree.Len())
}

func TestView_CategoriesLoaded(t *testing.T) {
	view := loaded(t, sampleService())

	assert.Equal(t, 3, view.Count())
	assert.Equal(t, "fashion", view.Selected())
	assert.NoError(t, view.Err())
}

func TestView_CategoriesLoadError(t *testing.T) {
	view := loaded(t, &MockCategoryService{err: errors.New("catalog unreadable")})

	assert.Error(t, view.Err())
	assert.Equal(t, 0, view.Count())
	assert.Contains(t, view.View(), "Could not load categories: catalog unreadable")
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Navigate(t *testing.T) {
	view := loaded(t, sampleService())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "fashion-shoes", view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "beauty", view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "fashion-shoes", view.Selected())
}

func TestView_EnterSelectsCategory(t *testing.T) {
	view := loaded(t, sampleService())
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.CategorySelected{ID: "fashion-shoes", Name: "Shoes"}, cmd())
	assert.Equal(t, "fashion-shoes", view.current)
}

func TestView_EnterWithoutCategories(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_QuitKey(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_SetCurrentSurvivesReload(t *testing.T) {
	svc := sampleService()
	view := NewView(nil, svc)
	view.SetCurrent("beauty")

	view.Update(view.Init()())

	assert.Equal(t, "beauty", view.Selected())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil)

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_View(t *testing.T) {
	view := loaded(t, sampleService())

	out := view.View()

	assert.Contains(t, out, "kwscope")
	assert.Contains(t, out, "Fashion")
	assert.Contains(t, out, "Shoes")
	assert.Contains(t, out, "Beauty")
	assert.Contains(t, out, "[Enter] Open")
}
