package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseItemCount parses an item count supplied by a user.
//
// Only plain decimal digits are accepted: no sign, no whitespace, no
// exponent. This matches what the layout core expects from its callers,
// which is a non-negative integer validated before invocation.
func ParseItemCount(s string) (int, error) {
	if s == "" {
		return 0, New(ErrCodeInvalidArgument, "item count cannot be empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, New(ErrCodeInvalidArgument, "%s is not a valid non-negative integer", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidArgument, err, "%s is out of range", s)
	}
	return n, nil
}

// ValidateItemCount checks that n is usable as a layout item count.
// A max of zero disables the upper bound.
func ValidateItemCount(n, max int) error {
	if n < 0 {
		return New(ErrCodeInvalidArgument, "item count must be non-negative, got %d", n)
	}
	if max > 0 && n > max {
		return New(ErrCodeInvalidArgument, "item count %d exceeds the limit of %d", n, max)
	}
	return nil
}

// ValidateOutputPath validates a path that output will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}
