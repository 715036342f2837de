package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// mockCatalog serves a fixed tree.
type mockCatalog struct {
	tree *domain.CategoryTree
	err  error
}

func (m *mockCatalog) Tree(_ context.Context) (*domain.CategoryTree, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tree, nil
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{tree: domain.NewCategoryTree([]*domain.Category{
		{ID: "fashion", Name: "Fashion", Children: []*domain.Category{
			{ID: "fashion-shoes", Name: "Shoes"},
		}},
		{ID: "beauty", Name: "Beauty"},
	})}
}

// mockSource returns generated records and counts calls.
type mockSource struct {
	calls   atomic.Int32
	err     error
	records func(category domain.Category, limit int) []domain.KeywordRecord

	// gate, when set, blocks Fetch until closed.
	gate chan struct{}

	mu       sync.Mutex
	lastName string
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Fetch(ctx context.Context, category domain.Category, limit int) ([]domain.KeywordRecord, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastName = category.Name
	m.mu.Unlock()

	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.records != nil {
		return m.records(category, limit), nil
	}
	return generate(category.Name, limit, 1), nil
}

// generate builds n valid records. Exactly three records contain "Shoes"
// when n is at least three.
func generate(name string, n int, seed uint64) []domain.KeywordRecord {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	competitions := domain.AllCompetitions()
	types := domain.AllSearchTypes()

	out := make([]domain.KeywordRecord, n)
	for i := range out {
		text := fmt.Sprintf("%s item %d", name, i)
		if i < 3 {
			text = fmt.Sprintf("%s Shoes style %d", name, i)
		}
		var trend domain.TrendSeries
		for m := range trend {
			trend[m] = rng.IntN(1000)
		}
		out[i] = domain.KeywordRecord{
			ID:           fmt.Sprintf("%s-%d", name, i),
			Text:         text,
			SearchVolume: rng.IntN(20) * 2500,
			ProductCount: rng.IntN(5000),
			Competition:  competitions[rng.IntN(len(competitions))],
			Trend:        trend,
			IsBrand:      rng.IntN(3) == 0,
			SearchType:   types[rng.IntN(len(types))],
		}
	}
	return out
}

// mockLoader returns datasets from a function, optionally blocking per call.
type mockLoader struct {
	load func(ctx context.Context, id string) (*domain.Dataset, error)
}

func (m *mockLoader) LoadCategory(ctx context.Context, id string) (*domain.Dataset, error) {
	return m.load(ctx, id)
}

func datasetOf(id, name string, records []domain.KeywordRecord) *domain.Dataset {
	return &domain.Dataset{CategoryID: id, CategoryName: name, Records: records}
}
