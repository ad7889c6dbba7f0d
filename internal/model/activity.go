package model

import "time"

// Activity represents an extracurricular offering with a participant cap.
// Activities are keyed by their human-readable name; there is no surrogate ID.
type Activity struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Schedule        string    `json:"schedule"`
	MaxParticipants int       `json:"max_participants"`
	Participants    []string  `json:"participants"`
	// ParticipantCount is derived from Participants at read time.
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SpotsLeft returns the number of open seats.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}
