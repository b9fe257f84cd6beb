package pkguid

import (
	"log/slog"

	"github.com/google/uuid"
)

// UUID generates RFC 9562 UUID strings, time ordered when possible.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
//
// It prefers v7 and falls back to a random v4 if the clock source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Warn("uuid v7 unavailable, falling back to v4", "error", err)
		return uuid.NewString()
	}
	return id.String()
}
