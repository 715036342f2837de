package domain

import (
	"fmt"
	"strings"
)

// TrendMonths is the number of trailing months in a trend series.
const TrendMonths = 12

// Competition is the advertiser competition level for a keyword.
type Competition string

// Competition levels.
const (
	CompetitionLow    Competition = "Low"
	CompetitionMedium Competition = "Medium"
	CompetitionHigh   Competition = "High"
)

// AllCompetitions returns every competition level, lowest first.
func AllCompetitions() []Competition {
	return []Competition{CompetitionLow, CompetitionMedium, CompetitionHigh}
}

// IsValid returns true if the competition level is recognised.
func (c Competition) IsValid() bool {
	switch c {
	case CompetitionLow, CompetitionMedium, CompetitionHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Competition) String() string {
	return string(c)
}

// ParseCompetition parses a competition level case-insensitively.
func ParseCompetition(s string) (Competition, error) {
	for _, c := range AllCompetitions() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: competition %q", ErrInvalidInput, s)
}

// SearchType classifies the intent behind a search term.
type SearchType string

// Search types.
const (
	SearchTypeShopping      SearchType = "Shopping"
	SearchTypeInformational SearchType = "Informational"
)

// AllSearchTypes returns every search type.
func AllSearchTypes() []SearchType {
	return []SearchType{SearchTypeShopping, SearchTypeInformational}
}

// IsValid returns true if the search type is recognised.
func (s SearchType) IsValid() bool {
	return s == SearchTypeShopping || s == SearchTypeInformational
}

// String returns the string representation.
func (s SearchType) String() string {
	return string(s)
}

// ParseSearchType parses a search type case-insensitively.
func ParseSearchType(s string) (SearchType, error) {
	for _, t := range AllSearchTypes() {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: search type %q", ErrInvalidInput, s)
}

// TrendSeries holds one monthly search count per trailing month, oldest first.
type TrendSeries [TrendMonths]int

// Peak returns the index of the month with the highest value.
// The earliest month wins ties.
func (t TrendSeries) Peak() int {
	best := 0
	for i, v := range t {
		if v > t[best] {
			best = i
		}
	}
	return best
}

// KeywordRecord is one row of the keyword analysis table.
// Records are held immutably once loaded.
type KeywordRecord struct {
	// ID is unique within a dataset.
	ID string `json:"id"`

	// Text is the search term as displayed.
	Text string `json:"text"`

	// SearchVolume is the monthly search count.
	SearchVolume int `json:"search_volume"`

	// ProductCount is the number of listed products matching the term.
	ProductCount int `json:"product_count"`

	Competition Competition `json:"competition"`

	Trend TrendSeries `json:"trend"`

	// IsBrand is true when the term names a brand.
	IsBrand bool `json:"is_brand"`

	SearchType SearchType `json:"search_type"`
}

// Validate checks the record's counts and closed enums.
func (r KeywordRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: keyword has no id", ErrInvalidInput)
	}
	if r.SearchVolume < 0 || r.ProductCount < 0 {
		return fmt.Errorf("%w: keyword %q has negative counts", ErrInvalidInput, r.ID)
	}
	for i, v := range r.Trend {
		if v < 0 {
			return fmt.Errorf("%w: keyword %q trend month %d is negative", ErrInvalidInput, r.ID, i)
		}
	}
	if !r.Competition.IsValid() {
		return fmt.Errorf("%w: keyword %q competition %q", ErrInvalidInput, r.ID, r.Competition)
	}
	if !r.SearchType.IsValid() {
		return fmt.Errorf("%w: keyword %q search type %q", ErrInvalidInput, r.ID, r.SearchType)
	}
	return nil
}

// BrandClass returns the brand dimension value for the record.
func (r KeywordRecord) BrandClass() BrandClass {
	if r.IsBrand {
		return BrandClassBrand
	}
	return BrandClassNonBrand
}
