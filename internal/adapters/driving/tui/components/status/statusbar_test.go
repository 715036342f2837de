package status

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/core/domain"
)

func wideBar() *Bar {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)
	return bar
}

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, domain.LoadStateIdle, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Total())
	assert.False(t, bar.LoadingMore())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	assert.Nil(t, NewBar(nil, nil).Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Sync(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateLoaded, Total: 120, Visible: 30, LoadingMore: true})

	assert.Equal(t, domain.LoadStateLoaded, bar.State())
	assert.Equal(t, 120, bar.Total())
	assert.True(t, bar.LoadingMore())
	assert.Equal(t, "", bar.Message())
}

func TestStatusBar_SyncFailure(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateFailed, Err: errors.New("network down")})

	assert.Equal(t, domain.LoadStateFailed, bar.State())
	assert.Equal(t, "network down", bar.Message())
}

func TestStatusBar_SetLoadingMore(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetLoadingMore(true)
	assert.True(t, bar.LoadingMore())

	bar.SetLoadingMore(false)
	assert.False(t, bar.LoadingMore())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateFailed, Err: errors.New("boom"), Total: 3})

	bar.Clear()

	assert.Equal(t, domain.LoadStateIdle, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Total())
}

func TestStatusBar_View_Idle(t *testing.T) {
	view := wideBar().View()

	assert.Contains(t, view, "Pick a category")
	assert.Contains(t, view, "q: quit")
}

func TestStatusBar_View_Loading(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateLoading})

	assert.Contains(t, bar.View(), "Loading keywords...")
}

func TestStatusBar_View_Loaded(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateLoaded, Total: 500, Visible: 30})

	view := bar.View()

	assert.Contains(t, view, "500 results found")
	assert.Contains(t, view, "(showing 30)")
	assert.Contains(t, view, "/: filter")
	assert.NotContains(t, view, "loading more")
}

func TestStatusBar_View_LoadedEmpty(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateLoaded})

	view := bar.View()

	assert.Contains(t, view, "0 results found")
	assert.NotContains(t, view, "showing")
}

func TestStatusBar_View_LoadingMore(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateLoaded, Total: 500, Visible: 30})
	bar.SetLoadingMore(true)

	assert.Contains(t, bar.View(), "loading more...")
}

func TestStatusBar_View_Failed(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateFailed, Err: errors.New("network down")})

	assert.Contains(t, bar.View(), "Load failed: network down")
}

func TestStatusBar_View_FailedWithoutMessage(t *testing.T) {
	bar := wideBar()
	bar.Sync(domain.ViewSnapshot{State: domain.LoadStateFailed})

	view := bar.View()

	assert.Contains(t, view, "Load failed")
	assert.NotContains(t, view, "Load failed:")
}

func TestStatusBar_View_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}
