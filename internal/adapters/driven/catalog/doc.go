// Package catalog provides the category taxonomy.
//
// A default tree is embedded in the binary. A user file in the same TOML
// layout replaces it when catalog.path is set.
package catalog
