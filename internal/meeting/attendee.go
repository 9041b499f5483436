package meeting

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/index"
)

// Attendee identifies a participant of a meeting. Attendees compare by value.
type Attendee struct {
	Name string
	// PersonID links the attendee to a contact when one exists.
	PersonID string
}

// NewAttendee trims and validates an attendee name.
func NewAttendee(name, personID string) (Attendee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		vErr := &ValidationError{}
		vErr.add("attendee", "attendee name is required")
		return Attendee{}, vErr
	}
	return Attendee{Name: name, PersonID: strings.TrimSpace(personID)}, nil
}

// String returns the display name.
func (a Attendee) String() string {
	return a.Name
}

// AttendeeSet is an immutable, duplicate free collection of attendees that keeps
// insertion order so positions stay stable between listings.
type AttendeeSet struct {
	items []Attendee
}

// NewAttendeeSet builds a set from the given attendees, keeping the first
// occurrence of any duplicate.
func NewAttendeeSet(attendees ...Attendee) AttendeeSet {
	return AttendeeSet{items: lo.Uniq(attendees)}
}

// Len returns the number of attendees.
func (s AttendeeSet) Len() int {
	return len(s.items)
}

// Get returns the attendee at the given position.
func (s AttendeeSet) Get(i index.Index) (Attendee, error) {
	if !i.Within(len(s.items)) {
		return Attendee{}, fmt.Errorf("%w: position %s of %d", ErrAttendeeNotFound, i, len(s.items))
	}
	return s.items[i.ZeroBased()], nil
}

// Contains reports whether the attendee is part of the set.
func (s AttendeeSet) Contains(a Attendee) bool {
	return lo.Contains(s.items, a)
}

// Without returns a new set lacking the given attendee. The relative order of
// the remaining attendees is preserved.
func (s AttendeeSet) Without(a Attendee) AttendeeSet {
	return AttendeeSet{items: lo.Without(s.items, a)}
}

// Equal reports set equality: same members regardless of order.
func (s AttendeeSet) Equal(other AttendeeSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	return lo.Every(other.items, s.items)
}

// Slice returns a copy of the attendees in order.
func (s AttendeeSet) Slice() []Attendee {
	out := make([]Attendee, len(s.items))
	copy(out, s.items)
	return out
}

// Names returns attendee names in order.
func (s AttendeeSet) Names() []string {
	return lo.Map(s.items, func(a Attendee, _ int) string { return a.Name })
}
