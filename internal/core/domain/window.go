package domain

// Default window sizes.
const (
	DefaultPageSize  = 30
	DefaultIncrement = 20
)

// Window is the growable visible prefix of a derived view.
// Visible always stays within [0, Total].
type Window struct {
	PageSize  int
	Increment int
	Visible   int
	Total     int
}

// NewWindow returns an empty window. Non-positive sizes fall back to defaults.
func NewWindow(pageSize, increment int) Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return Window{PageSize: pageSize, Increment: increment}
}

// Reset starts the window over a view of total records.
func (w Window) Reset(total int) Window {
	if total < 0 {
		total = 0
	}
	w.Total = total
	w.Visible = min(w.PageSize, total)
	return w
}

// Grow reveals one more increment. It is a no-op at the end.
func (w Window) Grow() Window {
	w.Visible = min(w.Visible+w.Increment, w.Total)
	return w
}

// AtEnd reports whether every record is visible.
func (w Window) AtEnd() bool {
	return w.Visible >= w.Total
}

// Slice returns the visible prefix of view.
func (w Window) Slice(view []KeywordRecord) []KeywordRecord {
	n := min(w.Visible, len(view))
	return view[:n:n]
}
