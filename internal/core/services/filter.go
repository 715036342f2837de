package services

import (
	"strings"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// ApplyFilter returns the records matching every active predicate in criteria.
// Input order is preserved and records are never duplicated or modified.
// The result is a new, non-nil slice.
func ApplyFilter(records []domain.KeywordRecord, criteria domain.FilterCriteria) []domain.KeywordRecord {
	term := criteria.Term()
	restrictBrand := criteria.Brand.Restricts()

	out := make([]domain.KeywordRecord, 0, len(records))
	for i := range records {
		r := &records[i]

		if term != "" && !strings.Contains(strings.ToLower(r.Text), term) {
			continue
		}
		if !criteria.Volume.Matches(r.SearchVolume) {
			continue
		}
		if restrictBrand && !criteria.Brand.Contains(r.BrandClass()) {
			continue
		}
		if !criteria.SearchTypes.Contains(r.SearchType) {
			continue
		}
		if !criteria.Competition.Contains(r.Competition) {
			continue
		}

		out = append(out, *r)
	}
	return out
}
