package model

import "time"

// Announcement represents a timed school-wide message. Expired announcements
// are hidden from the public list but retained for management.
type Announcement struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	CreatedBy      string     `json:"created_by"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	ExpirationDate time.Time  `json:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ActiveAt reports whether the announcement should appear on the public
// list at the given instant: not yet expired, and past its start date when
// one is set. Nothing is stored; the state is recomputed on every read.
func (a *Announcement) ActiveAt(now time.Time) bool {
	if a.ExpirationDate.Before(now) {
		return false
	}
	if a.StartDate != nil && a.StartDate.After(now) {
		return false
	}
	return true
}

// CreateAnnouncementRequest is the payload for creating an announcement.
// Dates travel as ISO-8601 strings and are parsed at the boundary.
type CreateAnnouncementRequest struct {
	Title          string  `json:"title" binding:"required,min=1,max=200"`
	Body           string  `json:"body" binding:"required,min=1,max=500"`
	StartDate      *string `json:"start_date" binding:"omitempty"`
	ExpirationDate string  `json:"expiration_date" binding:"required"`
}

// UpdateAnnouncementRequest is the payload for a partial announcement update.
// Absent fields keep their stored values.
type UpdateAnnouncementRequest struct {
	Title          *string `json:"title" binding:"omitempty,min=1,max=200"`
	Body           *string `json:"body" binding:"omitempty,min=1,max=500"`
	StartDate      *string `json:"start_date" binding:"omitempty"`
	ExpirationDate *string `json:"expiration_date" binding:"omitempty"`
}

// AnnouncementUpdate carries parsed partial-update fields into the service
// layer. Nil pointers mean "leave unchanged".
type AnnouncementUpdate struct {
	Title          *string
	Body           *string
	StartDate      *time.Time
	ExpirationDate *time.Time
}

// AnnouncementEventAction enumerates live-feed event kinds.
type AnnouncementEventAction string

const (
	AnnouncementCreated AnnouncementEventAction = "created"
	AnnouncementUpdated AnnouncementEventAction = "updated"
	AnnouncementDeleted AnnouncementEventAction = "deleted"
)

// AnnouncementEvent is broadcast on the live feed whenever an announcement
// is mutated. Deleted events carry only the ID.
type AnnouncementEvent struct {
	Action       AnnouncementEventAction `json:"action"`
	ID           string                  `json:"id"`
	Announcement *Announcement           `json:"announcement,omitempty"`
}
