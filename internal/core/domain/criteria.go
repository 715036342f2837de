package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BrandClass is the brand dimension of a keyword.
type BrandClass string

// Brand classes.
const (
	BrandClassBrand    BrandClass = "brand"
	BrandClassNonBrand BrandClass = "non-brand"
)

// AllBrandClasses returns both brand classes.
func AllBrandClasses() []BrandClass {
	return []BrandClass{BrandClassBrand, BrandClassNonBrand}
}

// ParseBrandClass parses "brand" or "non-brand" (also "nonbrand", "non_brand").
func ParseBrandClass(s string) (BrandClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brand":
		return BrandClassBrand, nil
	case "non-brand", "nonbrand", "non_brand":
		return BrandClassNonBrand, nil
	default:
		return "", fmt.Errorf("%w: brand class %q", ErrInvalidInput, s)
	}
}

// VolumePresets are the thresholds offered by the user interfaces.
var VolumePresets = []int{1000, 5000, 10000, 50000, 100000}

// VolumeMode selects how the search-volume predicate is applied.
type VolumeMode string

// Volume modes.
const (
	VolumeAny    VolumeMode = "any"
	VolumePreset VolumeMode = "preset"
	VolumeCustom VolumeMode = "custom"
)

// Bound is an optional integer limit.
type Bound struct {
	Value int
	Set   bool
}

// Unset is a bound that does not constrain.
var Unset = Bound{}

// At returns a bound set to v.
func At(v int) Bound {
	return Bound{Value: v, Set: true}
}

// ParseBound parses user input into a bound.
// Empty or malformed input yields an unset bound rather than an error.
func ParseBound(s string) Bound {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Unset
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Unset
	}
	return At(v)
}

// String returns the bound value, or "" when unset.
func (b Bound) String() string {
	if !b.Set {
		return ""
	}
	return strconv.Itoa(b.Value)
}

// VolumeFilter constrains search volume.
type VolumeFilter struct {
	Mode VolumeMode

	// Threshold applies in preset mode.
	Threshold int

	// Min and Max apply in custom mode.
	Min Bound
	Max Bound
}

// Matches reports whether volume passes the filter.
func (f VolumeFilter) Matches(volume int) bool {
	switch f.Mode {
	case VolumePreset:
		return volume >= f.Threshold
	case VolumeCustom:
		if f.Min.Set && volume < f.Min.Value {
			return false
		}
		if f.Max.Set && volume > f.Max.Value {
			return false
		}
		return true
	default:
		return true
	}
}

// IsActive reports whether the filter can exclude anything.
func (f VolumeFilter) IsActive() bool {
	switch f.Mode {
	case VolumePreset:
		return true
	case VolumeCustom:
		return f.Min.Set || f.Max.Set
	default:
		return false
	}
}

// FilterCriteria is the active query over a dataset.
// It is an immutable value; the With and Toggle helpers return modified copies.
type FilterCriteria struct {
	// Text is matched case-insensitively as a substring of keyword text.
	Text string

	Volume VolumeFilter

	Brand       InclusionSet[BrandClass]
	SearchTypes InclusionSet[SearchType]
	Competition InclusionSet[Competition]
}

// DefaultCriteria returns criteria with no constraints.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Volume:      VolumeFilter{Mode: VolumeAny},
		Brand:       NewInclusionSet(AllBrandClasses()...),
		SearchTypes: NewInclusionSet(AllSearchTypes()...),
		Competition: NewInclusionSet(AllCompetitions()...),
	}
}

// Term returns the normalised search term.
func (c FilterCriteria) Term() string {
	return strings.ToLower(strings.TrimSpace(c.Text))
}

// WithText sets the free-text term.
func (c FilterCriteria) WithText(text string) FilterCriteria {
	c.Text = text
	return c
}

// WithPresetVolume keeps records with at least threshold searches.
func (c FilterCriteria) WithPresetVolume(threshold int) FilterCriteria {
	c.Volume = VolumeFilter{Mode: VolumePreset, Threshold: threshold}
	return c
}

// WithCustomVolume keeps records inside [lo, hi]; unset bounds are open.
func (c FilterCriteria) WithCustomVolume(lo, hi Bound) FilterCriteria {
	c.Volume = VolumeFilter{Mode: VolumeCustom, Min: lo, Max: hi}
	return c
}

// WithoutVolume removes the volume constraint.
func (c FilterCriteria) WithoutVolume() FilterCriteria {
	c.Volume = VolumeFilter{Mode: VolumeAny}
	return c
}

// ToggleBrand toggles one brand class.
func (c FilterCriteria) ToggleBrand(b BrandClass) FilterCriteria {
	c.Brand = c.Brand.Toggle(b)
	return c
}

// ToggleSearchType toggles one search type.
func (c FilterCriteria) ToggleSearchType(t SearchType) FilterCriteria {
	c.SearchTypes = c.SearchTypes.Toggle(t)
	return c
}

// ToggleCompetition toggles one competition level.
func (c FilterCriteria) ToggleCompetition(l Competition) FilterCriteria {
	c.Competition = c.Competition.Toggle(l)
	return c
}

// Active describes each predicate that constrains the view.
func (c FilterCriteria) Active() []string {
	var out []string
	if term := c.Term(); term != "" {
		out = append(out, fmt.Sprintf("text contains %q", term))
	}
	switch c.Volume.Mode {
	case VolumePreset:
		out = append(out, fmt.Sprintf("volume >= %d", c.Volume.Threshold))
	case VolumeCustom:
		switch {
		case c.Volume.Min.Set && c.Volume.Max.Set:
			out = append(out, fmt.Sprintf("volume %d-%d", c.Volume.Min.Value, c.Volume.Max.Value))
		case c.Volume.Min.Set:
			out = append(out, fmt.Sprintf("volume >= %d", c.Volume.Min.Value))
		case c.Volume.Max.Set:
			out = append(out, fmt.Sprintf("volume <= %d", c.Volume.Max.Value))
		}
	}
	if c.Brand.Restricts() {
		out = append(out, "brand: "+joinValues(c.Brand.Values()))
	}
	if !c.SearchTypes.IsAll() {
		out = append(out, "type: "+joinValues(c.SearchTypes.Values()))
	}
	if !c.Competition.IsAll() {
		out = append(out, "competition: "+joinValues(c.Competition.Values()))
	}
	return out
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
