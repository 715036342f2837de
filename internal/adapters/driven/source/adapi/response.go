package adapi

import (
	"fmt"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

type searchResponse struct {
	Keywords []keywordRow `json:"keywords"`
}

// keywordRow is one row as the API reports it.
type keywordRow struct {
	ID            string `json:"id"`
	Keyword       string `json:"keyword"`
	MonthlyVolume *int   `json:"monthly_volume"`
	ProductCount  int    `json:"product_count"`
	Competition   string `json:"competition"`
	MonthlyTrend  []int  `json:"monthly_trend"`
	IsBrand       bool   `json:"is_brand"`
	SearchType    string `json:"search_type"`
}

func (row keywordRow) toDomain() (domain.KeywordRecord, error) {
	if row.MonthlyVolume == nil {
		return domain.KeywordRecord{}, fmt.Errorf("%w: keyword %q has no monthly_volume", domain.ErrInvalidInput, row.ID)
	}
	if len(row.MonthlyTrend) != domain.TrendMonths {
		return domain.KeywordRecord{}, fmt.Errorf("%w: keyword %q has %d trend months, want %d",
			domain.ErrInvalidInput, row.ID, len(row.MonthlyTrend), domain.TrendMonths)
	}
	competition, err := domain.ParseCompetition(row.Competition)
	if err != nil {
		return domain.KeywordRecord{}, err
	}
	searchType, err := domain.ParseSearchType(row.SearchType)
	if err != nil {
		return domain.KeywordRecord{}, err
	}

	r := domain.KeywordRecord{
		ID:           row.ID,
		Text:         row.Keyword,
		SearchVolume: *row.MonthlyVolume,
		ProductCount: row.ProductCount,
		Competition:  competition,
		IsBrand:      row.IsBrand,
		SearchType:   searchType,
	}
	copy(r.Trend[:], row.MonthlyTrend)

	if err := r.Validate(); err != nil {
		return domain.KeywordRecord{}, err
	}
	return r, nil
}
