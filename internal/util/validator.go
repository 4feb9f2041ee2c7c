package util

import (
	"fmt"
	"strings"
	"time"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldErrors is the result of validating a request body. An empty list
// means the input is valid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Reason))
	}
	return strings.Join(parts, "; ")
}

// Add appends a field error and returns the extended list.
func (fe FieldErrors) Add(field, reason string) FieldErrors {
	return append(fe, FieldError{Field: field, Reason: reason})
}

// ValidateName checks a resource display name (accounts, categories).
func ValidateName(name string) *FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return &FieldError{Field: "name", Reason: "is required"}
	}
	if len(name) > 64 {
		return &FieldError{Field: "name", Reason: "must be at most 64 characters"}
	}
	return nil
}

// ValidateAmountCents checks a minor-unit amount. Zero is rejected,
// sign is free (negative amounts are expenses).
func ValidateAmountCents(cents int64) *FieldError {
	const limit = int64(1_000_000_000_00) // one billion in cents
	if cents == 0 {
		return &FieldError{Field: "amount", Reason: "must not be zero"}
	}
	if cents >= limit || cents <= -limit {
		return &FieldError{Field: "amount", Reason: "out of range"}
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string and returns the parsed day.
func ValidateDate(field, dateStr string) (time.Time, *FieldError) {
	if dateStr == "" {
		return time.Time{}, &FieldError{Field: field, Reason: "is required"}
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}

// ValidateNotes checks free-text notes length.
func ValidateNotes(notes string) *FieldError {
	if len(notes) > 255 {
		return &FieldError{Field: "notes", Reason: "must be at most 255 characters"}
	}
	return nil
}
