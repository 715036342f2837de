package domain

import "slices"

// InclusionSet is a multi-select filter over a closed set of values.
// The zero value, and the result of All, is the "all" sentinel: no constraint.
// Selecting a specific value replaces "all"; removing the last specific value
// reverts to "all". Every operation returns a new set.
type InclusionSet[T comparable] struct {
	universe []T
	selected []T
}

// NewInclusionSet returns an "all" set over the given universe.
func NewInclusionSet[T comparable](universe ...T) InclusionSet[T] {
	return InclusionSet[T]{universe: slices.Clone(universe)}
}

// All returns the sentinel set over the same universe.
func (s InclusionSet[T]) All() InclusionSet[T] {
	return InclusionSet[T]{universe: s.universe}
}

// SelectAll clears every specific selection.
func (s InclusionSet[T]) SelectAll() InclusionSet[T] {
	return s.All()
}

// IsAll reports whether the set is the "all" sentinel.
func (s InclusionSet[T]) IsAll() bool {
	return len(s.selected) == 0
}

// Universe returns the possible values in declaration order.
func (s InclusionSet[T]) Universe() []T {
	return slices.Clone(s.universe)
}

// Values returns the specific selections in universe order.
// It is empty when the set is "all".
func (s InclusionSet[T]) Values() []T {
	out := make([]T, 0, len(s.selected))
	for _, v := range s.universe {
		if slices.Contains(s.selected, v) {
			out = append(out, v)
		}
	}
	// Values outside the universe are kept after the known ones.
	for _, v := range s.selected {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Contains reports whether v passes the set.
func (s InclusionSet[T]) Contains(v T) bool {
	return s.IsAll() || slices.Contains(s.selected, v)
}

// Selected reports whether v is explicitly selected.
func (s InclusionSet[T]) Selected(v T) bool {
	return slices.Contains(s.selected, v)
}

// Restricts reports whether the set excludes anything from the universe.
// A set holding every universe value is equivalent to "all". Without a
// universe any explicit selection restricts.
func (s InclusionSet[T]) Restricts() bool {
	if s.IsAll() {
		return false
	}
	if len(s.universe) == 0 {
		return true
	}
	for _, v := range s.universe {
		if !slices.Contains(s.selected, v) {
			return true
		}
	}
	return false
}

// Toggle selects v, or deselects it when it is already selected.
func (s InclusionSet[T]) Toggle(v T) InclusionSet[T] {
	if i := slices.Index(s.selected, v); i >= 0 {
		return InclusionSet[T]{
			universe: s.universe,
			selected: slices.Delete(slices.Clone(s.selected), i, i+1),
		}
	}
	return InclusionSet[T]{
		universe: s.universe,
		selected: append(slices.Clone(s.selected), v),
	}
}

// Only returns a set selecting exactly the given values.
// An empty list yields "all".
func (s InclusionSet[T]) Only(values ...T) InclusionSet[T] {
	out := s.All()
	for _, v := range values {
		if !out.Selected(v) {
			out = out.Toggle(v)
		}
	}
	return out
}
