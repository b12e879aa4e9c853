// Package validation formats the lists of accepted values that appear in
// input errors.
package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins string-like values as "a, b, or c".
func FormatValidValues[T ~string](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, string(value))
	}
	switch len(formatted) {
	case 0:
		return ""
	case 1:
		return formatted[0]
	case 2:
		return formatted[0] + " or " + formatted[1]
	}
	return strings.Join(formatted[:len(formatted)-1], ", ") + ", or " + formatted[len(formatted)-1]
}

// FormatInvalidValueError wraps base with the rejected value and the values
// that would have been accepted.
func FormatInvalidValueError[T ~string](base error, value T, valid []T) error {
	return fmt.Errorf("%w %q: must be %s", base, string(value), FormatValidValues(valid))
}
