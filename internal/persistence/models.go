package persistence

import "time"

// Attendee is a stored meeting participant.
type Attendee struct {
	Name     string
	PersonID *string
}

// Meeting represents a meeting row together with its ordered attendees.
type Meeting struct {
	ID        string
	Title     string
	Location  *string
	Start     time.Time
	End       time.Time
	Attendees []Attendee
	CreatedAt time.Time
	UpdatedAt time.Time
}
