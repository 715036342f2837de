package driving

import (
	"context"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// KeywordService answers one-shot keyword queries.
type KeywordService interface {
	// Query loads the category, applies criteria and sort, and returns the
	// visible page after q.Pages load-more steps.
	Query(ctx context.Context, q domain.KeywordQuery) (*domain.KeywordPage, error)

	// Invalidate drops any cached dataset for the category.
	Invalidate(ctx context.Context, categoryID string) error
}

// KeywordBrowser is an interactive keyword table session.
// A browser owns one dataset, its criteria and sort, and the pagination window.
type KeywordBrowser interface {
	// Load replaces the dataset with the given category's keywords.
	// A load superseded by a later one is discarded.
	Load(ctx context.Context, categoryID string) error

	// SetCriteria replaces the filter criteria and resets the window.
	SetCriteria(criteria domain.FilterCriteria)

	// UpdateCriteria applies fn to the current criteria and resets the window.
	UpdateCriteria(fn func(domain.FilterCriteria) domain.FilterCriteria)

	// SetSort replaces the sort and resets the window.
	SetSort(spec domain.SortSpec)

	// ToggleSort applies a user sort action on key.
	ToggleSort(key domain.SortKey)

	// LoadMore grows the window by one increment after the configured delay.
	// It returns false when the request was ignored because another
	// load-more is pending, nothing is loaded, or the window is at its end.
	LoadMore(ctx context.Context) (bool, error)

	// Snapshot returns a consistent view of the session.
	Snapshot() domain.ViewSnapshot
}

// CategoryService exposes the category taxonomy.
type CategoryService interface {
	// Tree returns the full category tree.
	Tree(ctx context.Context) (*domain.CategoryTree, error)

	// Find looks up a category.
	// Returns domain.ErrNotFound if the category does not exist.
	Find(ctx context.Context, id string) (*domain.Category, error)

	// NameOf returns the display name, or "" when the category does not exist.
	NameOf(ctx context.Context, id string) string
}
