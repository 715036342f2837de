package domain

import "time"

// Dataset is the full, unfiltered set of keywords for one category.
// It is replaced wholesale, never modified in place.
type Dataset struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Records      []KeywordRecord `json:"records"`
	LoadedAt     time.Time       `json:"loaded_at"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// LoadState describes where a session is in loading its dataset.
type LoadState string

// Load states. An empty view in LoadStateLoaded is distinct from LoadStateIdle.
const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
)

// String returns the string representation.
func (s LoadState) String() string {
	return string(s)
}

// ViewSnapshot is a consistent read of a session's derived view.
type ViewSnapshot struct {
	CategoryID   string
	CategoryName string
	State        LoadState

	// Err is set when State is LoadStateFailed.
	Err error

	Criteria FilterCriteria
	Sort     SortSpec

	// Records is the visible prefix of the filtered and sorted view.
	Records []KeywordRecord

	// Total is the size of the filtered view before pagination.
	Total int

	Visible     int
	DatasetSize int

	LoadingMore bool
}

// HasMore reports whether the window can still grow.
func (v ViewSnapshot) HasMore() bool {
	return v.Visible < v.Total
}

// KeywordQuery is a one-shot request for a page of keywords.
type KeywordQuery struct {
	CategoryID string
	Criteria   FilterCriteria
	Sort       SortSpec

	// Pages is the number of load-more steps applied after the initial page.
	Pages int
}

// KeywordPage is the result of a KeywordQuery.
type KeywordPage struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Sort         SortSpec        `json:"sort"`
	Filters      []string        `json:"filters,omitempty"`
	Records      []KeywordRecord `json:"records"`
	Total        int             `json:"total"`
	DatasetSize  int             `json:"dataset_size"`
	HasMore      bool            `json:"has_more"`
}
