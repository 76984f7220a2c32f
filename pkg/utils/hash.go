package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// HashData hashes the JSON encoding of v. Map keys are encoded in sorted
// order, so equal submissions always share a digest.
func HashData(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode for hashing: %w", err)
	}
	return HashString(string(b)), nil
}
