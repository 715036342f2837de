package tui

import "errors"

// ErrMissingCategoryService is returned when the category service is not provided.
var ErrMissingCategoryService = errors.New("tui: category service is required")

// ErrMissingBrowser is returned when the keyword browser is not provided.
var ErrMissingBrowser = errors.New("tui: keyword browser is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
