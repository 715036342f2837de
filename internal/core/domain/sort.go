package domain

import (
	"fmt"
	"strings"
)

// SortKey names a comparable keyword field.
type SortKey string

// Sortable fields. The trend series is deliberately absent.
const (
	SortByText         SortKey = "text"
	SortBySearchVolume SortKey = "search_volume"
	SortByProductCount SortKey = "product_count"
	SortByCompetition  SortKey = "competition"
	SortByIsBrand      SortKey = "is_brand"
	SortBySearchType   SortKey = "search_type"
)

// AllSortKeys returns every sortable field in column order.
func AllSortKeys() []SortKey {
	return []SortKey{
		SortByText,
		SortBySearchVolume,
		SortByProductCount,
		SortByCompetition,
		SortByIsBrand,
		SortBySearchType,
	}
}

// IsValid returns true if the key names a comparable field.
func (k SortKey) IsValid() bool {
	for _, v := range AllSortKeys() {
		if k == v {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (k SortKey) String() string {
	return string(k)
}

// ParseSortKey parses a sort key. Accepts hyphens in place of underscores.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch k {
	case "volume":
		return SortBySearchVolume, nil
	case "products":
		return SortByProductCount, nil
	case "brand":
		return SortByIsBrand, nil
	case "type":
		return SortBySearchType, nil
	}
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return k, nil
}

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortSpec is the single active sort.
type SortSpec struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort orders by search volume, highest first.
func DefaultSort() SortSpec {
	return SortSpec{Key: SortBySearchVolume, Direction: Descending}
}

// Toggle applies a user sort action on key.
// The active key flips direction; any other key starts descending.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	if s.Key == key {
		return SortSpec{Key: key, Direction: s.Direction.Flip()}
	}
	return SortSpec{Key: key, Direction: Descending}
}

// String renders the spec as "key asc" or "key desc".
func (s SortSpec) String() string {
	return fmt.Sprintf("%s %s", s.Key, s.Direction)
}
