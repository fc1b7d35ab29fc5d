package core

import (
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	baseErr := errors.New("base error")

	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field",
			err: &ValidationError{
				Field:   "severity",
				Message: "must be between 1 and 10",
				Err:     baseErr,
			},
			expected: "severity: must be between 1 and 10",
		},
		{
			name: "without field",
			err: &ValidationError{
				Message: "invalid record",
				Err:     baseErr,
			},
			expected: "invalid record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.expected)
			}

			// Test Unwrap
			if !errors.Is(tt.err, baseErr) {
				t.Error("ValidationError should wrap base error")
			}
		})
	}
}

func TestGenerationError(t *testing.T) {
	baseErr := errors.New("base error")

	err := &GenerationError{
		Operation: "batch",
		Message:   "service returned no records",
		Err:       baseErr,
	}

	expected := "generation batch: service returned no records"
	if got := err.Error(); got != expected {
		t.Errorf("GenerationError.Error() = %v, want %v", got, expected)
	}

	// Test Unwrap
	if !errors.Is(err, baseErr) {
		t.Error("GenerationError should wrap base error")
	}
}

func TestStorageError(t *testing.T) {
	baseErr := errors.New("base error")

	err := &StorageError{
		Operation: "save",
		Message:   "write failed",
		Err:       baseErr,
	}

	expected := "storage save: write failed"
	if got := err.Error(); got != expected {
		t.Errorf("StorageError.Error() = %v, want %v", got, expected)
	}

	// Test Unwrap
	if !errors.Is(err, baseErr) {
		t.Error("StorageError should wrap base error")
	}
}

func TestLockError(t *testing.T) {
	baseErr := errors.New("base error")

	err := &LockError{
		Operation: "acquire",
		Message:   "file already locked",
		Err:       baseErr,
	}

	expected := "lock acquire: file already locked"
	if got := err.Error(); got != expected {
		t.Errorf("LockError.Error() = %v, want %v", got, expected)
	}

	// Test Unwrap
	if !errors.Is(err, baseErr) {
		t.Error("LockError should wrap base error")
	}
}
