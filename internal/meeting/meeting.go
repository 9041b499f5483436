// Package meeting holds the immutable meeting and attendee values managed by the
// address book.
package meeting

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Params captures the fields required to construct a Meeting.
type Params struct {
	// ID is the stable storage key. A new one is generated when empty.
	ID        string
	Title     string
	Location  string
	Start     time.Time
	End       time.Time
	Attendees AttendeeSet
}

// Meeting is an immutable scheduled event. Updates produce a new *Meeting; the
// model replaces instances by pointer identity.
type Meeting struct {
	id        string
	title     string
	location  string
	start     time.Time
	end       time.Time
	attendees AttendeeSet
}

// NewID returns a fresh meeting identifier.
func NewID() string {
	return uuid.NewString()
}

// New validates params and builds a Meeting.
func New(params Params) (*Meeting, error) {
	vErr := &ValidationError{}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		vErr.add("title", "title is required")
	}
	if params.Start.IsZero() || params.End.IsZero() {
		vErr.add("time", "start and end are required")
	} else if !params.End.After(params.Start) {
		vErr.add("time", "end must be after start")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	id := strings.TrimSpace(params.ID)
	if id == "" {
		id = NewID()
	}

	return &Meeting{
		id:        id,
		title:     title,
		location:  strings.TrimSpace(params.Location),
		start:     params.Start,
		end:       params.End,
		attendees: params.Attendees,
	}, nil
}

// WithAttendees returns a copy of the meeting carrying the given attendees.
// The receiver is left untouched.
func (m *Meeting) WithAttendees(attendees AttendeeSet) *Meeting {
	return &Meeting{
		id:        m.id,
		title:     m.title,
		location:  m.location,
		start:     m.start,
		end:       m.end,
		attendees: attendees,
	}
}

// ID returns the stable storage key.
func (m *Meeting) ID() string {
	return m.id
}

// Title returns the meeting title.
func (m *Meeting) Title() string {
	return m.title
}

// Location returns where the meeting takes place. It may be empty.
func (m *Meeting) Location() string {
	return m.location
}

// Start returns the start time.
func (m *Meeting) Start() time.Time {
	return m.start
}

// End returns the end time.
func (m *Meeting) End() time.Time {
	return m.end
}

// Attendees returns the ordered attendee set.
func (m *Meeting) Attendees() AttendeeSet {
	return m.attendees
}

// Equal compares meeting contents, not identity.
func (m *Meeting) Equal(other *Meeting) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.id == other.id &&
		m.title == other.title &&
		m.location == other.location &&
		m.start.Equal(other.start) &&
		m.end.Equal(other.end) &&
		m.attendees.Equal(other.attendees)
}
