package domain

import (
	"fmt"
	"strings"
)

// Category is a node in the fixed product taxonomy used to scope keyword generation.
type Category struct {
	// ID is unique within the tree.
	ID string

	// Name is the display name.
	Name string

	// Level is the depth in the tree, starting at 1 for roots.
	Level int

	// ParentID is empty for root categories.
	ParentID string

	// Children are ordered.
	Children []*Category
}

// IsRoot returns true if the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// IsLeaf returns true if the category has no children.
func (c *Category) IsLeaf() bool {
	return len(c.Children) == 0
}

// CategoryTree is the static taxonomy, loaded once and only traversed afterwards.
type CategoryTree struct {
	roots []*Category
}

// NewCategoryTree builds a tree from its root categories.
// Levels and parent references are filled in from the nesting, so callers
// only need to supply IDs, names and children.
func NewCategoryTree(roots []*Category) *CategoryTree {
	for _, r := range roots {
		link(r, "", 1)
	}
	return &CategoryTree{roots: roots}
}

func link(c *Category, parentID string, level int) {
	c.ParentID = parentID
	c.Level = level
	for _, child := range c.Children {
		link(child, c.ID, level+1)
	}
}

// Roots returns the top-level categories.
func (t *CategoryTree) Roots() []*Category {
	if t == nil {
		return nil
	}
	return t.roots
}

// Walk visits every category depth-first, parents before children.
// Returning false from fn stops the walk.
// A nil tree is empty.
func (t *CategoryTree) Walk(fn func(c *Category) bool) {
	if t == nil {
		return
	}
	var visit func(nodes []*Category) bool
	visit = func(nodes []*Category) bool {
		for _, n := range nodes {
			if !fn(n) {
				return false
			}
			if !visit(n.Children) {
				return false
			}
		}
		return true
	}
	visit(t.roots)
}

// Find looks up a category by identifier.
func (t *CategoryTree) Find(id string) (*Category, bool) {
	var found *Category
	t.Walk(func(c *Category) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// NameOf returns the display name for id, or "" if the category does not exist.
// A missing category is an empty label, not an error.
func (t *CategoryTree) NameOf(id string) string {
	if t == nil {
		return ""
	}
	if c, ok := t.Find(id); ok {
		return c.Name
	}
	return ""
}

// Path returns the display names from the root down to id.
func (t *CategoryTree) Path(id string) []string {
	if t == nil {
		return nil
	}
	var path []string
	var visit func(nodes []*Category, trail []string) bool
	visit = func(nodes []*Category, trail []string) bool {
		for _, n := range nodes {
			next := append(append([]string(nil), trail...), n.Name)
			if n.ID == id {
				path = next
				return true
			}
			if visit(n.Children, next) {
				return true
			}
		}
		return false
	}
	visit(t.roots, nil)
	return path
}

// Leaves returns every category without children, in depth-first order.
func (t *CategoryTree) Leaves() []*Category {
	var leaves []*Category
	t.Walk(func(c *Category) bool {
		if c.IsLeaf() {
			leaves = append(leaves, c)
		}
		return true
	})
	return leaves
}

// Len returns the number of categories in the tree.
func (t *CategoryTree) Len() int {
	n := 0
	t.Walk(func(*Category) bool {
		n++
		return true
	})
	return n
}

// Validate checks identifier uniqueness and the level/parent invariant.
func (t *CategoryTree) Validate() error {
	seen := make(map[string]bool)
	var check func(nodes []*Category, parent *Category) error
	check = func(nodes []*Category, parent *Category) error {
		for _, n := range nodes {
			if strings.TrimSpace(n.ID) == "" {
				return fmt.Errorf("%w: category %q has no id", ErrInvalidCategoryTree, n.Name)
			}
			if seen[n.ID] {
				return fmt.Errorf("%w: duplicate id %q", ErrInvalidCategoryTree, n.ID)
			}
			seen[n.ID] = true

			if parent == nil {
				if n.Level != 1 || n.ParentID != "" {
					return fmt.Errorf("%w: root %q must have level 1 and no parent", ErrInvalidCategoryTree, n.ID)
				}
			} else if n.Level != parent.Level+1 || n.ParentID != parent.ID {
				return fmt.Errorf("%w: %q must have level %d under %q",
					ErrInvalidCategoryTree, n.ID, parent.Level+1, parent.ID)
			}

			if err := check(n.Children, n); err != nil {
				return err
			}
		}
		return nil
	}
	return check(t.roots, nil)
}
