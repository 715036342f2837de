// Package keywords provides the keyword table view for the TUI.
package keywords

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// DefaultScrollThreshold is used when no threshold is configured.
const DefaultScrollThreshold = 5

// Column widths, excluding the keyword column which takes the remainder.
const (
	colRank        = 5
	colVolume      = 10
	colProducts    = 10
	colCompetition = 12
	colBrand       = 7
	colType        = 14
	colTrend       = 14
	minKeywordCol  = 16
)

// View shows the browser's visible rows and drives its criteria and sort.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	browser   driving.KeywordBrowser
	ctx       context.Context
	filter    *input.FilterInput
	table     table.Model
	spinner   spinner.Model
	statusbar *status.Bar

	snap      domain.ViewSnapshot
	threshold int

	// loadingMore guards against overlapping load-more requests.
	loadingMore bool

	// presetIndex points into domain.VolumePresets; -1 means no preset.
	presetIndex int

	decorations decorations

	width  int
	height int
	ready  bool
}

// NewView creates a new keyword table view.
// A negative threshold falls back to DefaultScrollThreshold.
func NewView(s *styles.Styles, km *keymap.KeyMap, browser driving.KeywordBrowser, threshold int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if threshold < 0 {
		threshold = DefaultScrollThreshold
	}

	t := table.New(
		table.WithColumns(columns(80, domain.DefaultSort())),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s.Table()),
	)

	return &View{
		styles:      s,
		keymap:      km,
		browser:     browser,
		ctx:         context.Background(),
		filter:      input.NewFilterInput(s),
		table:       t,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		statusbar:   status.NewBar(s, km),
		snap:        domain.ViewSnapshot{State: domain.LoadStateIdle, Criteria: domain.DefaultCriteria(), Sort: domain.DefaultSort()},
		threshold:   threshold,
		presetIndex: -1,
		decorations: make(decorations),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load starts loading a category and shows the spinner until it completes.
func (v *View) Load(categoryID, name string) tea.Cmd {
	v.loadingMore = false
	v.snap = domain.ViewSnapshot{
		CategoryID:   categoryID,
		CategoryName: name,
		State:        domain.LoadStateLoading,
		Criteria:     v.snap.Criteria,
		Sort:         domain.DefaultSort(),
	}
	v.statusbar.Sync(v.snap)
	v.table.SetRows(nil)

	ctx, browser := v.ctx, v.browser
	load := func() tea.Msg {
		err := browser.Load(ctx, categoryID)
		return messages.DatasetLoaded{CategoryID: categoryID, Err: err}
	}
	return tea.Batch(v.spinner.Tick, load)
}

// Update handles messages for the keyword view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if v.snap.State != domain.LoadStateLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.DatasetLoaded:
		v.refresh()
		if v.snap.State == domain.LoadStateLoaded {
			v.table.GotoTop()
		}
		return v, nil

	case messages.MoreLoaded:
		v.loadingMore = false
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.filter.Focused() {
		return v.handleFilterKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPicker}
		}

	case v.snap.State == domain.LoadStateFailed && keymap.Matches(keyStr, v.keymap.Select):
		return v, v.Load(v.snap.CategoryID, v.snap.CategoryName)

	case v.snap.State != domain.LoadStateLoaded:
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Filter):
		return v, v.filter.Focus()

	case keymap.Matches(keyStr, v.keymap.Brand):
		v.changeCriteria(func(c domain.FilterCriteria) domain.FilterCriteria {
			c.Brand = cycle(c.Brand)
			return c
		})
		return v, nil

	case keymap.Matches(keyStr, v.keymap.SearchType):
		v.changeCriteria(func(c domain.FilterCriteria) domain.FilterCriteria {
			c.SearchTypes = cycle(c.SearchTypes)
			return c
		})
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Competition):
		v.changeCriteria(func(c domain.FilterCriteria) domain.FilterCriteria {
			c.Competition = cycle(c.Competition)
			return c
		})
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Volume):
		v.presetIndex++
		if v.presetIndex >= len(domain.VolumePresets) {
			v.presetIndex = -1
		}
		idx := v.presetIndex
		v.changeCriteria(func(c domain.FilterCriteria) domain.FilterCriteria {
			if idx < 0 {
				return c.WithoutVolume()
			}
			return c.WithPresetVolume(domain.VolumePresets[idx])
		})
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Reset):
		v.presetIndex = -1
		v.filter.Reset()
		v.browser.SetCriteria(domain.DefaultCriteria())
		v.afterChange()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Sort):
		if key, ok := keymap.SortKeyFor(keyStr); ok {
			v.browser.ToggleSort(key)
			v.afterChange()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, tea.Batch(cmd, v.maybeLoadMore())
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
		v.filter.Blur()
		return v, nil
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if text := v.filter.Value(); text != before {
		v.changeCriteria(func(c domain.FilterCriteria) domain.FilterCriteria {
			return c.WithText(text)
		})
	}
	return v, cmd
}

func (v *View) changeCriteria(fn func(domain.FilterCriteria) domain.FilterCriteria) {
	v.browser.UpdateCriteria(fn)
	v.afterChange()
}

// afterChange re-reads the recomputed view. A pending load-more becomes
// stale, and its completion will not grow the new window.
func (v *View) afterChange() {
	v.refresh()
	v.table.GotoTop()
}

// maybeLoadMore requests more rows when the cursor is within the scroll
// threshold of the last visible row. Requests are ignored while one is pending.
func (v *View) maybeLoadMore() tea.Cmd {
	if v.loadingMore || v.snap.State != domain.LoadStateLoaded || !v.snap.HasMore() {
		return nil
	}
	rows := len(v.table.Rows())
	if rows == 0 || rows-1-v.table.Cursor() > v.threshold {
		return nil
	}

	v.loadingMore = true
	v.statusbar.SetLoadingMore(true)

	ctx, browser := v.ctx, v.browser
	return func() tea.Msg {
		grew, err := browser.LoadMore(ctx)
		return messages.MoreLoaded{Grew: grew, Err: err}
	}
}

// refresh copies the browser snapshot into the table and status bar.
func (v *View) refresh() {
	v.snap = v.browser.Snapshot()
	v.statusbar.Sync(v.snap)
	v.statusbar.SetLoadingMore(v.loadingMore || v.snap.LoadingMore)

	cursor := v.table.Cursor()
	v.table.SetColumns(columns(v.width, v.snap.Sort))
	v.table.SetRows(rows(v.snap.Records))
	if cursor >= len(v.snap.Records) {
		cursor = max(0, len(v.snap.Records)-1)
	}
	v.table.SetCursor(cursor)
}

// cycle steps an inclusion set through "all", then each value alone.
func cycle[T comparable](set domain.InclusionSet[T]) domain.InclusionSet[T] {
	universe := set.Universe()
	if set.IsAll() {
		return set.Only(universe[0])
	}
	values := set.Values()
	if len(values) != 1 {
		return set.All()
	}
	i := slices.Index(universe, values[0])
	if i < 0 || i == len(universe)-1 {
		return set.All()
	}
	return set.Only(universe[i+1])
}

func columns(width int, sort domain.SortSpec) []table.Column {
	fixed := colRank + colVolume + colProducts + colCompetition + colBrand + colType + colTrend
	// Each of the eight columns carries one cell of padding on both sides.
	keyword := max(minKeywordCol, width-fixed-16)

	title := func(n int, name string, key domain.SortKey) string {
		label := fmt.Sprintf("%d %s", n, name)
		if sort.Key != key {
			return label
		}
		if sort.Direction == domain.Ascending {
			return label + " ▲"
		}
		return label + " ▼"
	}

	return []table.Column{
		{Title: "#", Width: colRank},
		{Title: title(1, "Keyword", domain.SortByText), Width: keyword},
		{Title: title(2, "Volume", domain.SortBySearchVolume), Width: colVolume},
		{Title: title(3, "Products", domain.SortByProductCount), Width: colProducts},
		{Title: title(4, "Comp.", domain.SortByCompetition), Width: colCompetition},
		{Title: title(5, "Brand", domain.SortByIsBrand), Width: colBrand},
		{Title: title(6, "Type", domain.SortBySearchType), Width: colType},
		{Title: "Trend", Width: colTrend},
	}
}

func rows(records []domain.KeywordRecord) []table.Row {
	out := make([]table.Row, len(records))
	for i, r := range records {
		brand := ""
		if r.IsBrand {
			brand = "brand"
		}
		out[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Text,
			humanize.Comma(int64(r.SearchVolume)),
			humanize.Comma(int64(r.ProductCount)),
			r.Competition.String(),
			brand,
			r.SearchType.String(),
			sparkline(r.Trend),
		}
	}
	return out
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a trend series scaled to its own peak.
func sparkline(t domain.TrendSeries) string {
	peak := t[t.Peak()]
	var b strings.Builder
	for _, v := range t {
		idx := 0
		if peak > 0 {
			idx = v * (len(sparks) - 1) / peak
		}
		b.WriteRune(sparks[idx])
	}
	return b.String()
}

// View renders the keyword table.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")

	switch v.snap.State {
	case domain.LoadStateLoading:
		b.WriteString("\n")
		b.WriteString(v.spinner.View())
		b.WriteString(" ")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Loading %s keywords...", v.title())))
		b.WriteString("\n")

	case domain.LoadStateFailed:
		b.WriteString("\n")
		msg := "unknown error"
		if v.snap.Err != nil {
			msg = v.snap.Err.Error()
		}
		b.WriteString(v.styles.Error.Render("Could not load keywords: " + msg))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[Enter] Retry  [Esc] Pick another category"))
		b.WriteString("\n")

	case domain.LoadStateLoaded:
		b.WriteString(v.filter.View())
		b.WriteString("\n")
		b.WriteString(v.renderFilters())
		b.WriteString("\n")
		if len(v.snap.Records) == 0 {
			b.WriteString(v.styles.Muted.Render("No keywords match the current filters."))
			b.WriteString("\n")
		} else {
			b.WriteString(v.table.View())
			b.WriteString("\n")
			b.WriteString(v.renderDetail())
			b.WriteString("\n")
		}

	default:
		b.WriteString(v.styles.Muted.Render("No category selected."))
		b.WriteString("\n")
	}

	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) title() string {
	if v.snap.CategoryName != "" {
		return v.snap.CategoryName
	}
	return v.snap.CategoryID
}

func (v *View) renderHeader() string {
	header := v.styles.Title.Render("kwscope") + v.styles.Muted.Render(" · ") + v.styles.Subtitle.Render(v.title())
	if v.snap.State == domain.LoadStateLoaded {
		header += v.styles.Muted.Render(fmt.Sprintf("  %d keywords, sorted by %s", v.snap.DatasetSize, v.snap.Sort))
	}
	return header
}

func (v *View) renderFilters() string {
	active := v.snap.Criteria.Active()
	if len(active) == 0 {
		return v.styles.Muted.Render("no filters · b brand · t type · c competition · v volume")
	}
	parts := make([]string, len(active))
	for i, a := range active {
		parts[i] = v.styles.Badge.Render(a)
	}
	return strings.Join(parts, v.styles.Muted.Render(" · "))
}

// renderDetail describes the record under the cursor.
func (v *View) renderDetail() string {
	r, ok := v.Current()
	if !ok {
		return ""
	}
	months := domain.TrendMonths - 1 - r.Trend.Peak()
	peak := "peaked this month"
	if months == 1 {
		peak = "peaked last month"
	} else if months > 1 {
		peak = fmt.Sprintf("peaked %d months ago", months)
	}
	comp := v.styles.Competition(r.Competition).Render(strings.ToLower(r.Competition.String()) + " competition")
	return fmt.Sprintf("%s %s · %s · %s",
		v.styles.Normal.Render(r.Text+":"), comp, v.styles.Muted.Render(peak),
		v.styles.Muted.Render(v.decorations.get(r.ID).String()))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filter.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.table.SetColumns(columns(width, v.snap.Sort))
	// Header, filter box, filter line, detail line and status bar take nine lines.
	v.table.SetHeight(max(3, height-9))
}

// Current returns the record under the cursor.
func (v *View) Current() (domain.KeywordRecord, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.snap.Records) {
		return domain.KeywordRecord{}, false
	}
	return v.snap.Records[i], true
}

// Snapshot returns the last snapshot read from the browser.
func (v *View) Snapshot() domain.ViewSnapshot {
	return v.snap
}

// Cursor returns the table cursor.
func (v *View) Cursor() int {
	return v.table.Cursor()
}

// LoadingMore reports whether a load-more request is pending.
func (v *View) LoadingMore() bool {
	return v.loadingMore
}

// FilterFocused reports whether the text filter has the keyboard.
func (v *View) FilterFocused() bool {
	return v.filter.Focused()
}
