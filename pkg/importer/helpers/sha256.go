package helpers

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Fingerprint returns the hex encoded SHA256 hash of the fields joined by "|".
//
// Runs of whitespace inside a field are collapsed to a single space and
// leading and trailing whitespace is dropped.
func Fingerprint(fields ...string) string {
	normalized := make([]string, len(fields))
	for i, f := range fields {
		normalized[i] = strings.Join(strings.Fields(f), " ")
	}

	return fmt.Sprintf("%x", sha256.Sum256([]byte(strings.Join(normalized, "|"))))
}
