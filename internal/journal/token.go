package journal

import "github.com/google/uuid"

// TokenGenerator produces unique run tokens.
// Implemented by UUIDv7Generator (production) and testutil fixed generators.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so run tokens sort
// by creation time, which helps when scanning a journal by hand. Stateless
// and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
