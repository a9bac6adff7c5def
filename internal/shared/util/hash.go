package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the hex SHA-256 of s. It is what the analysis log keeps
// in place of the submitted text.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
