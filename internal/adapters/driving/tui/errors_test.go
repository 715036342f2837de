package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingCategoryService,
		ErrMissingBrowser,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingCategoryService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingCategoryService.Error(), "category service")
}

func TestErrMissingBrowser_Message(t *testing.T) {
	assert.Contains(t, ErrMissingBrowser.Error(), "keyword browser")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
