package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("recordId", "must be exactly 6 digits")

	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "recordId", vErr.Field)
	assert.Equal(t, "must be exactly 6 digits", vErr.Message)
	assert.Contains(t, err.Error(), "validation failed for field 'recordId'")
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", err.Error())
}

func TestNewCapacityError(t *testing.T) {
	err := NewCapacityError(3, 3)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CAPACITY_EXCEEDED", appErr.Code)
	assert.Equal(t, "[CAPACITY_EXCEEDED] cannot add more loans, 3 of 3 records in use", err.Error())
}
