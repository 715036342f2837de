package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// Ensure KeywordService implements the interface.
var _ driving.KeywordService = (*KeywordService)(nil)

// KeywordService answers one-shot queries by running a short-lived session
// with no simulated latency.
type KeywordService struct {
	datasets *DatasetService
	engine   domain.EngineSettings
}

// NewKeywordService creates a new keyword service.
func NewKeywordService(datasets *DatasetService, engine domain.EngineSettings) *KeywordService {
	engine.LoadDelay = 0
	engine.LoadMoreDelay = 0
	return &KeywordService{datasets: datasets, engine: engine}
}

// Query loads the category and returns the page the window shows after
// q.Pages load-more steps.
func (s *KeywordService) Query(ctx context.Context, q domain.KeywordQuery) (*domain.KeywordPage, error) {
	if q.CategoryID == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if q.Sort.Key == "" {
		q.Sort = domain.DefaultSort()
	}
	if !q.Sort.Key.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, q.Sort.Key)
	}

	logger.Section("Keyword Query")
	logger.Debug("Category: %q, sort: %s, pages: %d", q.CategoryID, q.Sort, q.Pages)

	session := NewSession(s.datasets, s.engine)
	if err := session.Load(ctx, q.CategoryID); err != nil {
		return nil, err
	}
	session.SetCriteria(q.Criteria)
	session.SetSort(q.Sort)

	for range q.Pages {
		grew, err := session.LoadMore(ctx)
		if err != nil {
			return nil, err
		}
		if !grew {
			break
		}
	}

	snap := session.Snapshot()
	return &domain.KeywordPage{
		CategoryID:   snap.CategoryID,
		CategoryName: snap.CategoryName,
		Sort:         snap.Sort,
		Filters:      snap.Criteria.Active(),
		Records:      snap.Records,
		Total:        snap.Total,
		DatasetSize:  snap.DatasetSize,
		HasMore:      snap.HasMore(),
	}, nil
}

// Invalidate drops any cached dataset for the category.
func (s *KeywordService) Invalidate(ctx context.Context, categoryID string) error {
	return s.datasets.Invalidate(ctx, categoryID)
}
