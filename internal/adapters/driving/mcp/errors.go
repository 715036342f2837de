// Package mcp provides an MCP (Model Context Protocol) server adapter for kwscope.
// It lets AI assistants list categories and query keyword datasets.
package mcp

import "errors"

// ErrMissingKeywordService is returned when the keyword service is not provided.
var ErrMissingKeywordService = errors.New("mcp: keyword service is required")

// ErrMissingCategoryService is returned when the category service is not provided.
var ErrMissingCategoryService = errors.New("mcp: category service is required")
