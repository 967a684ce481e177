package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// themeNameRegex matches valid theme names: lowercase, digits, dash and underscore.
var themeNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// maxThemeNameLength bounds theme names so they stay usable as flag values.
const maxThemeNameLength = 64

// ValidateThemeName validates a theme name used as a key in a themes mapping.
//
// Validation rules:
//   - No empty names
//   - Maximum length of 64 characters
//   - Lowercase letters, digits, '-' and '_' only, starting with a letter or digit
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTheme, "theme name cannot be empty")
	}

	if len(name) > maxThemeNameLength {
		return New(ErrCodeInvalidTheme, "theme name too long (max %d characters)", maxThemeNameLength)
	}

	if !themeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTheme, "invalid theme name: %q", name)
	}

	return nil
}

// ValidateWeight validates a single layout weight.
// Negative and non-finite values are rejected, never clamped.
func ValidateWeight(name string, w float64) error {
	switch {
	case math.IsNaN(w):
		return New(ErrCodeInvalidInput, "value %s is NaN", name)
	case math.IsInf(w, 0):
		return New(ErrCodeInvalidInput, "value %s is infinite", name)
	case w < 0:
		return New(ErrCodeInvalidInput, "value %s is negative: %g", name, w)
	}
	return nil
}

// ValidateExtent validates a canvas dimension.
func ValidateExtent(axis string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "canvas %s is not finite", axis)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "canvas %s is negative: %g", axis, v)
	}
	return nil
}

// ValidatePath validates an output or config file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace")
	}

	return nil
}
