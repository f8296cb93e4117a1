package models

import (
	"io"

	"github.com/google/uuid"
)

// NewID draws a v4 uuid from r. A seeded *rand.Rand gives reproducible ids.
func NewID(r io.Reader) string {
	return uuid.Must(uuid.NewRandomFromReader(r)).String()
}
