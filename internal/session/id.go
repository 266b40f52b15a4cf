package session

import (
	"strings"

	"github.com/google/uuid"
)

// idLength keeps session URLs short while leaving 48 bits of entropy,
// plenty for a table that only ever holds a handful of live sessions.
const idLength = 12

// GenerateID returns a URL-safe session identifier: a UUIDv4 with the
// dashes stripped, truncated to idLength hex characters.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
