package driven

import (
	"context"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// KeywordSource produces keyword records for a category.
// Implementations may call a remote API or generate data locally;
// the engine is agnostic to which.
type KeywordSource interface {
	// Name identifies the source in logs and status output.
	Name() string

	// Fetch returns up to limit records for the category.
	// Records must satisfy KeywordRecord.Validate. Order is not significant.
	Fetch(ctx context.Context, category domain.Category, limit int) ([]domain.KeywordRecord, error)
}

// CategoryCatalog supplies the category taxonomy.
type CategoryCatalog interface {
	// Tree returns the validated category tree.
	Tree(ctx context.Context) (*domain.CategoryTree, error)
}
