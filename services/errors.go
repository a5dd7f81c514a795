// services/errors.go - Error taxonomy for the progression engine
package services

import "errors"

// Sentinel errors returned by the engine. Handlers map these to HTTP
// statuses with errors.Is; anything else is a 500. "Already unlocked" and
// "already completed" are not errors, they are no-op results.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidAmount       = errors.New("points must be positive")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrTaskNotFound        = errors.New("task not found")
)

// Tokens are opaque pre-validated identifiers; the only local rule is the
// minimum length.
const minTokenLength = 8

func validateToken(token string) error {
	if len(token) < minTokenLength {
		return ErrInvalidToken
	}
	return nil
}
