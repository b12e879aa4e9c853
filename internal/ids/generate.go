// Package ids generates short lowercase identifiers and resolves them by
// unique prefix.
package ids

import (
	"crypto/sha256"
	"encoding/base32"

	internalstrings "github.com/amonks/agenda/internal/strings"
	"github.com/google/uuid"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length <= 0 {
		return ""
	}
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLowerTrimSpace(encoded[:length])
}

// New returns a fresh ID of the given length seeded from a random UUID.
func New(length int) string {
	return Generate(uuid.NewString(), length)
}
