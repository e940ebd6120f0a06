package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const keySep = ":"

// Key joins namespace parts into one cache key, e.g. Key("doc", id) = "doc:id".
func Key(parts ...string) string {
	return strings.Join(parts, keySep)
}

// Digest shortens arbitrary input such as a URL into a fixed 32-character key part.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:16])
}
