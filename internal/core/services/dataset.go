package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// DefaultBatchSize is the number of keywords loaded per category.
const DefaultBatchSize = 500

// DatasetService loads keyword datasets for categories.
// Loads for the same category that overlap in time share one fetch.
type DatasetService struct {
	catalog   driven.CategoryCatalog
	source    driven.KeywordSource
	cache     driven.DatasetCache
	batchSize int
	group     singleflight.Group
	now       func() time.Time
}

// NewDatasetService creates a new dataset service.
// The cache parameter is optional (can be nil).
func NewDatasetService(
	catalog driven.CategoryCatalog,
	source driven.KeywordSource,
	cache driven.DatasetCache,
	batchSize int,
) *DatasetService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DatasetService{
		catalog:   catalog,
		source:    source,
		cache:     cache,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// LoadCategory returns the dataset for a category, sorted by search volume
// descending. An unknown category is not an error: it loads under an empty
// display name.
func (s *DatasetService) LoadCategory(ctx context.Context, categoryID string) (*domain.Dataset, error) {
	v, err, shared := s.group.Do(categoryID, func() (any, error) {
		return s.load(ctx, categoryID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Shared in-flight load for %q", categoryID)
	}
	return v.(*domain.Dataset), nil
}

func (s *DatasetService) load(ctx context.Context, categoryID string) (*domain.Dataset, error) {
	logger.Section("Dataset Load")
	logger.Debug("Category: %q, batch size: %d", categoryID, s.batchSize)

	if s.cache != nil {
		ds, err := s.cache.Get(ctx, categoryID)
		switch {
		case err == nil:
			if verr := validateRecords(ds.Records); verr != nil {
				logger.Warn("Discarding cached dataset for %q: %v", categoryID, verr)
				break
			}
			logger.Info("Cache hit for %q (%d records)", categoryID, ds.Len())
			return ds, nil
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("Cache miss for %q", categoryID)
		default:
			logger.Warn("Cache read failed for %q: %v", categoryID, err)
		}
	}

	category := domain.Category{ID: categoryID}
	if s.catalog != nil {
		tree, err := s.catalog.Tree(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		if c, ok := tree.Find(categoryID); ok {
			category = *c
		} else {
			logger.Debug("Category %q not in catalog, using empty name", categoryID)
		}
	}

	if s.source == nil {
		return nil, fmt.Errorf("%w: no keyword source configured", domain.ErrSourceUnavailable)
	}
	logger.Debug("Fetching from source %s", s.source.Name())

	records, err := s.source.Fetch(ctx, category, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch keywords for %q: %w", categoryID, err)
	}
	if err := validateRecords(records); err != nil {
		return nil, fmt.Errorf("fetch keywords for %q: %w", categoryID, err)
	}

	records = slices.Clone(records)
	slices.SortStableFunc(records, func(a, b domain.KeywordRecord) int {
		return cmp.Compare(b.SearchVolume, a.SearchVolume)
	})

	ds := &domain.Dataset{
		CategoryID:   categoryID,
		CategoryName: category.Name,
		Records:      records,
		LoadedAt:     s.now(),
	}
	logger.Info("Loaded %d records for %q", len(records), category.Name)

	if s.cache != nil {
		if err := s.cache.Put(ctx, ds); err != nil {
			logger.Warn("Cache write failed for %q: %v", categoryID, err)
		}
	}

	return ds, nil
}

// Invalidate drops the cached dataset for a category.
func (s *DatasetService) Invalidate(ctx context.Context, categoryID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("invalidate %q: %w", categoryID, err)
	}
	return nil
}

func validateRecords(records []domain.KeywordRecord) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
