package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("text", "required")

	if got := err.Error(); got != "validation: text: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "text", Message: "required"},
		{Field: "targetLanguage", Message: "unsupported"},
	})

	if got := err.Error(); got != "validation: text: required; targetLanguage: unsupported" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("feedback.Analyze: %w", NewValidationError("text", "too long"))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped ValidationError should match ErrValidation")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if ve.Errors[0].Field != "text" {
		t.Errorf("field = %q, want text", ve.Errors[0].Field)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation, ErrConflict, ErrUnavailable,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
