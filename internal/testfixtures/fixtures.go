// Package testfixtures provides deterministic meetings, clocks and storage for tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/persistence"
)

var meetingCounter uint64

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// AttendeeFixture is an attendee name with an optional person reference.
type AttendeeFixture struct {
	Name     string
	PersonID string
}

// MeetingFixture is a deterministic meeting that can be materialised for model
// or persistence tests.
type MeetingFixture struct {
	ID        string
	Title     string
	Location  string
	Start     time.Time
	End       time.Time
	Attendees []AttendeeFixture
}

// MeetingOption configures the generated meeting fixture.
type MeetingOption func(*MeetingFixture)

// NewMeetingFixture returns a half hour meeting with two attendees. Each call
// gets a fresh ID and a start one hour after the previous fixture.
func NewMeetingFixture(opts ...MeetingOption) MeetingFixture {
	idx := atomic.AddUint64(&meetingCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := MeetingFixture{
		ID:       fmt.Sprintf("meeting-%03d", idx),
		Title:    fmt.Sprintf("Meeting %03d", idx),
		Location: "Room A",
		Start:    start,
		End:      start.Add(30 * time.Minute),
		Attendees: []AttendeeFixture{
			{Name: "Alice", PersonID: "person-alice"},
			{Name: "Bob"},
		},
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMeetingID overrides the identifier.
func WithMeetingID(id string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ID = id
	}
}

// WithTitle overrides the title.
func WithTitle(title string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Title = title
	}
}

// WithLocation overrides the location. An empty location is stored as NULL.
func WithLocation(location string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Location = location
	}
}

// WithSpan sets start and end.
func WithSpan(start time.Time, d time.Duration) MeetingOption {
	return func(f *MeetingFixture) {
		f.Start = start
		f.End = start.Add(d)
	}
}

// WithAttendees replaces the attendees with the given names.
func WithAttendees(names ...string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Attendees = lo.Map(names, func(name string, _ int) AttendeeFixture {
			return AttendeeFixture{Name: name}
		})
	}
}

// Meeting builds the domain value, failing tb if the fixture is invalid.
func (f MeetingFixture) Meeting(tb testing.TB) *meeting.Meeting {
	tb.Helper()

	attendees := make([]meeting.Attendee, 0, len(f.Attendees))
	for _, a := range f.Attendees {
		attendee, err := meeting.NewAttendee(a.Name, a.PersonID)
		if err != nil {
			tb.Fatalf("invalid attendee fixture %q: %v", a.Name, err)
		}
		attendees = append(attendees, attendee)
	}

	m, err := meeting.New(meeting.Params{
		ID:        f.ID,
		Title:     f.Title,
		Location:  f.Location,
		Start:     f.Start,
		End:       f.End,
		Attendees: meeting.NewAttendeeSet(attendees...),
	})
	if err != nil {
		tb.Fatalf("invalid meeting fixture %s: %v", f.ID, err)
	}
	return m
}

// Record converts the fixture into its persistence representation.
func (f MeetingFixture) Record() persistence.Meeting {
	return persistence.Meeting{
		ID:       f.ID,
		Title:    f.Title,
		Location: optional(f.Location),
		Start:    f.Start,
		End:      f.End,
		Attendees: lo.Map(f.Attendees, func(a AttendeeFixture, _ int) persistence.Attendee {
			return persistence.Attendee{Name: a.Name, PersonID: optional(a.PersonID)}
		}),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
