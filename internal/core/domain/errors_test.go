package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidCategoryTree", ErrInvalidCategoryTree},
		{"ErrInvalidSortKey", ErrInvalidSortKey},
		{"ErrSourceUnavailable", ErrSourceUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrCacheUnavailable", ErrCacheUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("parse competition %q: %w", "Extreme", ErrInvalidInput)

	assert.ErrorIs(t, wrapped, ErrInvalidInput)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "Extreme")
}
