package services

import (
	"cmp"
	"slices"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// ApplySort returns a stably sorted copy of records.
// Numeric fields compare numerically, enum and text fields by their string
// value, and booleans with false before true. Descending reverses the
// comparison, so equal records keep their input order in both directions.
func ApplySort(records []domain.KeywordRecord, spec domain.SortSpec) []domain.KeywordRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []domain.KeywordRecord{}
	}

	compare := comparator(spec.Key)
	if spec.Direction == domain.Descending {
		slices.SortStableFunc(out, func(a, b domain.KeywordRecord) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func comparator(key domain.SortKey) func(a, b domain.KeywordRecord) int {
	switch key {
	case domain.SortByText:
		return func(a, b domain.KeywordRecord) int { return cmp.Compare(a.Text, b.Text) }
	case domain.SortByProductCount:
		return func(a, b domain.KeywordRecord) int { return cmp.Compare(a.ProductCount, b.ProductCount) }
	case domain.SortByCompetition:
		return func(a, b domain.KeywordRecord) int { return cmp.Compare(a.Competition, b.Competition) }
	case domain.SortByIsBrand:
		return func(a, b domain.KeywordRecord) int { return compareBool(a.IsBrand, b.IsBrand) }
	case domain.SortBySearchType:
		return func(a, b domain.KeywordRecord) int { return cmp.Compare(a.SearchType, b.SearchType) }
	default:
		return func(a, b domain.KeywordRecord) int { return cmp.Compare(a.SearchVolume, b.SearchVolume) }
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
