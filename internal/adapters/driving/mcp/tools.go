package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// defaultLimit caps the records returned by query_keywords when no limit is given.
const defaultLimit = 50

// QueryKeywordsInput is the input schema for the query_keywords tool.
type QueryKeywordsInput struct {
	CategoryID   string   `json:"category_id" jsonschema:"the category to load keywords for"`
	Search       string   `json:"search,omitempty" jsonschema:"case-insensitive substring the keyword must contain"`
	MinVolume    int      `json:"min_volume,omitempty" jsonschema:"minimum monthly searches"`
	MaxVolume    int      `json:"max_volume,omitempty" jsonschema:"maximum monthly searches"`
	VolumePreset int      `json:"volume_preset,omitempty" jsonschema:"preset minimum monthly searches, overrides min and max"`
	Brand        []string `json:"brand,omitempty" jsonschema:"brand classes to keep: brand, non-brand"`
	SearchTypes  []string `json:"search_types,omitempty" jsonschema:"search types to keep: shopping, informational"`
	Competition  []string `json:"competition,omitempty" jsonschema:"competition levels to keep: low, medium, high"`
	Sort         string   `json:"sort,omitempty" jsonschema:"sort key (default search_volume)"`
	Ascending    bool     `json:"ascending,omitempty" jsonschema:"sort ascending instead of descending"`
	Pages        int      `json:"pages,omitempty" jsonschema:"number of load-more steps after the first page"`
	Limit        int      `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// QueryKeywordsOutput is the output schema for the query_keywords tool.
type QueryKeywordsOutput struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Sort         string          `json:"sort"`
	Filters      []string        `json:"filters,omitempty"`
	Total        int             `json:"total"`
	DatasetSize  int             `json:"dataset_size"`
	HasMore      bool            `json:"has_more"`
	Keywords     []KeywordOutput `json:"keywords"`
}

// KeywordOutput represents a single keyword record.
type KeywordOutput struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	SearchVolume int    `json:"search_volume"`
	ProductCount int    `json:"product_count"`
	Competition  string `json:"competition"`
	IsBrand      bool   `json:"is_brand"`
	SearchType   string `json:"search_type"`
	Trend        []int  `json:"trend"`
}

// ListCategoriesInput is the input schema for the list_categories tool.
type ListCategoriesInput struct {
	LeavesOnly bool `json:"leaves_only,omitempty" jsonschema:"only return categories without children"`
}

// ListCategoriesOutput is the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Count      int              `json:"count"`
}

// CategoryOutput represents a single category.
type CategoryOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	Level    int    `json:"level"`
	Leaf     bool   `json:"leaf"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_keywords",
		Description: "Filter and sort the keyword dataset of a product category",
	}, s.handleQueryKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the product categories keywords can be queried for",
	}, s.handleListCategories)
}

// handleQueryKeywords handles the query_keywords tool invocation.
func (s *Server) handleQueryKeywords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryKeywordsInput,
) (*mcp.CallToolResult, QueryKeywordsOutput, error) {
	query, err := toQuery(input)
	if err != nil {
		return nil, QueryKeywordsOutput{}, err
	}

	page, err := s.ports.Keywords.Query(ctx, query)
	if err != nil {
		return nil, QueryKeywordsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	records := page.Records
	if len(records) > limit {
		records = records[:limit]
	}

	output := QueryKeywordsOutput{
		CategoryID:   page.CategoryID,
		CategoryName: page.CategoryName,
		Sort:         page.Sort.String(),
		Filters:      page.Filters,
		Total:        page.Total,
		DatasetSize:  page.DatasetSize,
		HasMore:      page.HasMore || len(records) < len(page.Records),
		Keywords:     make([]KeywordOutput, len(records)),
	}
	for i := range records {
		r := &records[i]
		output.Keywords[i] = KeywordOutput{
			ID:           r.ID,
			Text:         r.Text,
			SearchVolume: r.SearchVolume,
			ProductCount: r.ProductCount,
			Competition:  r.Competition.String(),
			IsBrand:      r.IsBrand,
			SearchType:   r.SearchType.String(),
			Trend:        r.Trend[:],
		}
	}

	return nil, output, nil
}

// toQuery converts tool input into a keyword query.
func toQuery(input QueryKeywordsInput) (domain.KeywordQuery, error) {
	if input.CategoryID == "" {
		return domain.KeywordQuery{}, fmt.Errorf("category_id is required: %w", domain.ErrInvalidInput)
	}

	criteria := domain.DefaultCriteria().WithText(input.Search)
	switch {
	case input.VolumePreset > 0:
		criteria = criteria.WithPresetVolume(input.VolumePreset)
	case input.MinVolume > 0 || input.MaxVolume > 0:
		lo, hi := domain.Unset, domain.Unset
		if input.MinVolume > 0 {
			lo = domain.At(input.MinVolume)
		}
		if input.MaxVolume > 0 {
			hi = domain.At(input.MaxVolume)
		}
		criteria = criteria.WithCustomVolume(lo, hi)
	}

	brands, err := parseAll(input.Brand, domain.ParseBrandClass)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.Brand = criteria.Brand.Only(brands...)

	types, err := parseAll(input.SearchTypes, domain.ParseSearchType)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.SearchTypes = criteria.SearchTypes.Only(types...)

	levels, err := parseAll(input.Competition, domain.ParseCompetition)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.Competition = criteria.Competition.Only(levels...)

	sort := domain.DefaultSort()
	if input.Sort != "" {
		key, err := domain.ParseSortKey(input.Sort)
		if err != nil {
			return domain.KeywordQuery{}, err
		}
		sort = domain.SortSpec{Key: key, Direction: domain.Descending}
	}
	if input.Ascending {
		sort.Direction = domain.Ascending
	}

	return domain.KeywordQuery{
		CategoryID: input.CategoryID,
		Criteria:   criteria,
		Sort:       sort,
		Pages:      max(input.Pages, 0),
	}, nil
}

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		parsed, err := parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// handleListCategories handles the list_categories tool invocation.
func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListCategoriesInput,
) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	categories, err := s.categories(ctx, input.LeavesOnly)
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}
	return nil, ListCategoriesOutput{Categories: categories, Count: len(categories)}, nil
}

// categories flattens the tree in depth-first order.
func (s *Server) categories(ctx context.Context, leavesOnly bool) ([]CategoryOutput, error) {
	tree, err := s.ports.Categories.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	out := make([]CategoryOutput, 0, tree.Len())
	tree.Walk(func(c *domain.Category) bool {
		if leavesOnly && !c.IsLeaf() {
			return true
		}
		out = append(out, CategoryOutput{
			ID:       c.ID,
			Name:     c.Name,
			ParentID: c.ParentID,
			Level:    c.Level,
			Leaf:     c.IsLeaf(),
		})
		return true
	})
	return out, nil
}
