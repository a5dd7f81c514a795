// utils/token.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewToken mints an opaque client token. Tokens are anonymous device
// identifiers, not credentials.
func NewToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
