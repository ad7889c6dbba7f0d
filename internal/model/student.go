package model

import "time"

// Student represents a roster entry, keyed by school email.
// Entries are created implicitly on first signup when not already present.
type Student struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Grade     int       `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
