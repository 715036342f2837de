package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.KeywordBrowser = (*Session)(nil)

// DatasetLoader loads the dataset for a category.
type DatasetLoader interface {
	LoadCategory(ctx context.Context, categoryID string) (*domain.Dataset, error)
}

// LoadTicket identifies one dataset load. Only the newest ticket may
// complete; older ones are discarded.
type LoadTicket struct {
	CategoryID string
	seq        uint64
}

// MoreTicket identifies one pending load-more against a specific view.
type MoreTicket struct {
	generation uint64
}

// Session is one keyword table: a dataset, the criteria and sort applied to
// it, the derived view, and the pagination window over that view.
// Every change to the dataset, criteria or sort reruns filter then sort and
// resets the window.
type Session struct {
	loader        DatasetLoader
	loadDelay     time.Duration
	loadMoreDelay time.Duration

	mu          sync.Mutex
	seq         uint64
	generation  uint64
	categoryID  string
	dataset     *domain.Dataset
	criteria    domain.FilterCriteria
	sort        domain.SortSpec
	view        []domain.KeywordRecord
	window      domain.Window
	state       domain.LoadState
	err         error
	loadingMore bool
}

// NewSession creates an idle session.
func NewSession(loader DatasetLoader, engine domain.EngineSettings) *Session {
	return &Session{
		loader:        loader,
		loadDelay:     engine.LoadDelay,
		loadMoreDelay: engine.LoadMoreDelay,
		criteria:      domain.DefaultCriteria(),
		sort:          domain.DefaultSort(),
		window:        domain.NewWindow(engine.PageSize, engine.Increment),
		state:         domain.LoadStateIdle,
	}
}

// BeginLoad marks the session as loading categoryID and returns the ticket
// the result must be completed with.
func (s *Session) BeginLoad(categoryID string) LoadTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.categoryID = categoryID
	s.state = domain.LoadStateLoading
	s.err = nil
	return LoadTicket{CategoryID: categoryID, seq: s.seq}
}

// CompleteLoad applies a finished load. It returns false, and changes
// nothing, when a newer load has started since the ticket was issued.
// A successful load resets the sort to its default and keeps the criteria.
func (s *Session) CompleteLoad(t LoadTicket, ds *domain.Dataset, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seq {
		logger.Debug("Discarding stale load for %q", t.CategoryID)
		return false
	}

	if err != nil {
		s.state = domain.LoadStateFailed
		s.err = err
		s.dataset = nil
	} else {
		s.state = domain.LoadStateLoaded
		s.dataset = ds
		s.sort = domain.DefaultSort()
	}
	s.recompute()
	return true
}

// Load loads categoryID after the configured delay.
// If another load starts meanwhile, this one's result is discarded.
func (s *Session) Load(ctx context.Context, categoryID string) error {
	t := s.BeginLoad(categoryID)

	if err := sleep(ctx, s.loadDelay); err != nil {
		s.CompleteLoad(t, nil, err)
		return err
	}

	ds, err := s.loader.LoadCategory(ctx, categoryID)
	s.CompleteLoad(t, ds, err)
	return err
}

// SetCriteria replaces the filter criteria.
func (s *Session) SetCriteria(criteria domain.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = criteria
	s.recompute()
}

// UpdateCriteria applies fn to the current criteria.
func (s *Session) UpdateCriteria(fn func(domain.FilterCriteria) domain.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = fn(s.criteria)
	s.recompute()
}

// SetSort replaces the sort.
func (s *Session) SetSort(spec domain.SortSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = spec
	s.recompute()
}

// ToggleSort applies a user sort action on key.
func (s *Session) ToggleSort(key domain.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = s.sort.Toggle(key)
	s.recompute()
}

// RequestMore sets the loading-more guard. It returns false when the
// request must be ignored: another load-more is pending, nothing is
// loaded, or every record is already visible.
func (s *Session) RequestMore() (MoreTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadingMore || s.state != domain.LoadStateLoaded || s.window.AtEnd() {
		return MoreTicket{}, false
	}
	s.loadingMore = true
	return MoreTicket{generation: s.generation}, true
}

// CompleteMore clears the guard and grows the window, unless the view was
// recomputed after the ticket was issued. It reports whether the window grew.
func (s *Session) CompleteMore(t MoreTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadingMore = false
	if t.generation != s.generation {
		return false
	}
	s.window = s.window.Grow()
	return true
}

// LoadMore grows the window by one increment after the configured delay.
// Calls made while one is pending are ignored and return false.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	t, ok := s.RequestMore()
	if !ok {
		return false, nil
	}

	if err := sleep(ctx, s.loadMoreDelay); err != nil {
		s.mu.Lock()
		s.loadingMore = false
		s.mu.Unlock()
		return false, err
	}

	return s.CompleteMore(t), nil
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() domain.ViewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.ViewSnapshot{
		CategoryID:  s.categoryID,
		State:       s.state,
		Err:         s.err,
		Criteria:    s.criteria,
		Sort:        s.sort,
		Records:     s.window.Slice(s.view),
		Total:       s.window.Total,
		Visible:     s.window.Visible,
		DatasetSize: s.dataset.Len(),
		LoadingMore: s.loadingMore,
	}
	if s.dataset != nil && s.dataset.CategoryID == s.categoryID {
		snap.CategoryName = s.dataset.CategoryName
	}
	return snap
}

// Visible returns the visible records.
func (s *Session) Visible() []domain.KeywordRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Slice(s.view)
}

// Total returns the size of the filtered view before pagination.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Total
}

// IsLoadingMore reports whether a load-more is pending.
func (s *Session) IsLoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}

// State returns the load state.
func (s *Session) State() domain.LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// recompute reruns the pipeline. Callers hold mu.
func (s *Session) recompute() {
	s.generation++

	var records []domain.KeywordRecord
	if s.dataset != nil {
		records = s.dataset.Records
	}
	s.view = ApplySort(ApplyFilter(records, s.criteria), s.sort)
	s.window = s.window.Reset(len(s.view))

	logger.Debug("View recomputed: %d of %d records, sort %s, showing %d",
		len(s.view), len(records), s.sort, s.window.Visible)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
