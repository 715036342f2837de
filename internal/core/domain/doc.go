// Package domain defines the core business entities for kwscope.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category: A node in the fixed product taxonomy
//   - KeywordRecord: One analysable search term with its metrics
//   - FilterCriteria: The active query, an immutable value
//   - SortSpec: The single active sort key and direction
//   - Window: The growable visible prefix of a derived view
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
