package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotsLeft(t *testing.T) {
	a := Activity{MaxParticipants: 12, Participants: []string{"a@x.edu", "b@x.edu"}}
	assert.Equal(t, 10, a.SpotsLeft())

	a.Participants = nil
	assert.Equal(t, 12, a.SpotsLeft())

	// Callers index into maps and slices of values; the getter must be
	// callable without an addressable receiver.
	byName := map[string]Activity{"Chess Club": {MaxParticipants: 2, Participants: []string{"a@x.edu"}}}
	assert.Equal(t, 1, byName["Chess Club"].SpotsLeft())
}
