package util

import "github.com/google/uuid"

// NewID returns a fresh collision-resistant row id. Row identity is always
// assigned server-side; client-supplied ids are never accepted.
func NewID() string {
	return uuid.NewString()
}
