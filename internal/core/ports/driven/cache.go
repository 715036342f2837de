package driven

import (
	"context"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// DatasetCache stores loaded datasets by category.
type DatasetCache interface {
	// Get returns the cached dataset.
	// Returns domain.ErrNotFound on a miss or an expired entry.
	Get(ctx context.Context, categoryID string) (*domain.Dataset, error)

	// Put stores a dataset, replacing any earlier one for its category.
	Put(ctx context.Context, dataset *domain.Dataset) error

	// Delete removes the cached dataset. Deleting a missing entry is not an error.
	Delete(ctx context.Context, categoryID string) error

	// Close releases the underlying connection.
	Close() error
}
