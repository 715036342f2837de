package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
	assert.NotEmpty(t, string(theme.Highlight))
}

func TestDefaultTheme_CompetitionColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Low, theme.Medium)
	assert.NotEqual(t, theme.Medium, theme.High)
	assert.NotEqual(t, theme.Low, theme.High)
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	require.NotNil(t, styles)
	assert.Equal(t, DefaultTheme(), styles.Theme())
}

func TestStyles_Competition(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	assert.Equal(t, theme.Low, s.Competition(domain.CompetitionLow).GetForeground())
	assert.Equal(t, theme.Medium, s.Competition(domain.CompetitionMedium).GetForeground())
	assert.Equal(t, theme.High, s.Competition(domain.CompetitionHigh).GetForeground())
	assert.Equal(t, theme.Foreground, s.Competition("Extreme").GetForeground())
}

func TestStyles_Table(t *testing.T) {
	s := DefaultStyles()

	ts := s.Table()

	assert.True(t, ts.Header.GetBold())
	assert.Equal(t, s.Theme().Highlight, ts.Selected.GetBackground())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("kwscope"), "kwscope")
	assert.Contains(t, s.Badge.Render("brand"), "brand")
	assert.Contains(t, s.Error.Render("failed"), "failed")
}
