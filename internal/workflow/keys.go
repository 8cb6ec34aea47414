package workflow

import (
	"regexp"
	"strings"

	"probuild/internal/apperr"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// NormalizeKey lowercases a status key and replaces whitespace runs with "_".
func NormalizeKey(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}

// ValidateStatusInput checks a new status's key and label; key must be normalised already.
func ValidateStatusInput(key, label string) error {
	if key == "" {
		return apperr.Invalid("key", "is required")
	}
	if !keyPattern.MatchString(key) {
		return apperr.Invalid("key", "may only contain lowercase letters, digits and underscores")
	}
	if strings.TrimSpace(label) == "" {
		return apperr.Invalid("label", "is required")
	}
	return nil
}
