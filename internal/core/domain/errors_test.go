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
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrUnknownSource", ErrUnknownSource},
		{"ErrInvalidRange", ErrInvalidRange},
		{"ErrNoCoverage", ErrNoCoverage},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnsupportedType,
		ErrUnknownSource,
		ErrInvalidRange,
		ErrNoCoverage,
		ErrStoreUnavailable,
		ErrRateLimited,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

func TestUnknownSourceError_MatchesSentinel(t *testing.T) {
	var err error = &UnknownSourceError{Source: "pdbtm"}

	assert.True(t, errors.Is(err, ErrUnknownSource))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "pdbtm")
}

func TestUnknownSourceError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("setting ranges: %w", &UnknownSourceError{Source: "x"})

	var use *UnknownSourceError
	assert.True(t, errors.As(err, &use))
	assert.Equal(t, AnnotationSource("x"), use.Source)
	assert.True(t, errors.Is(err, ErrUnknownSource))
}
