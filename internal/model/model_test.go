package model

import (
	"errors"
	"testing"
	"time"

	"github.com/example/meetingbook/internal/meeting"
)

func newMeeting(t *testing.T, id, title string, names ...string) *meeting.Meeting {
	t.Helper()
	attendees := make([]meeting.Attendee, 0, len(names))
	for _, name := range names {
		attendees = append(attendees, meeting.Attendee{Name: name})
	}
	start := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	m, err := meeting.New(meeting.Params{
		ID:        id,
		Title:     title,
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: meeting.NewAttendeeSet(attendees...),
	})
	if err != nil {
		t.Fatalf("meeting.New returned error: %v", err)
	}
	return m
}

func TestManager_SetMeetingReplacesByIdentity(t *testing.T) {
	t.Parallel()

	standup := newMeeting(t, "m-1", "Standup", "Alice", "Bob")
	retro := newMeeting(t, "m-2", "Retro", "Carol")
	mgr, err := NewManager(standup, retro)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	if len(mgr.Dirty()) != 0 {
		t.Fatalf("expected no dirty meetings after construction")
	}

	edited := standup.WithAttendees(meeting.NewAttendeeSet(meeting.Attendee{Name: "Alice"}))
	if err := mgr.SetMeeting(standup, edited); err != nil {
		t.Fatalf("SetMeeting returned error: %v", err)
	}

	list := mgr.FilteredMeetingList()
	if list[0] != edited || list[1] != retro {
		t.Fatalf("expected edited meeting in place of original, got %v", list)
	}

	dirty := mgr.Dirty()
	if len(dirty) != 1 || dirty[0] != edited {
		t.Fatalf("expected edited meeting to be dirty, got %v", dirty)
	}

	mgr.ClearDirty()
	if len(mgr.Dirty()) != 0 {
		t.Fatalf("expected ClearDirty to reset changes")
	}
}

func TestManager_SetMeetingRejectsUnknownInstance(t *testing.T) {
	t.Parallel()

	standup := newMeeting(t, "m-1", "Standup", "Alice")
	mgr, err := NewManager(standup)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	lookalike := newMeeting(t, "m-1", "Standup", "Alice")
	err = mgr.SetMeeting(lookalike, lookalike.WithAttendees(meeting.NewAttendeeSet()))
	if !errors.Is(err, ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound for equal but distinct instance, got %v", err)
	}
	if mgr.FilteredMeetingList()[0] != standup {
		t.Fatalf("expected book to be unchanged")
	}
}

func TestManager_SetMeetingSameInstanceIsNoop(t *testing.T) {
	t.Parallel()

	standup := newMeeting(t, "m-1", "Standup", "Alice")
	mgr, err := NewManager(standup)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	if err := mgr.SetMeeting(standup, standup); err != nil {
		t.Fatalf("SetMeeting returned error: %v", err)
	}
	if len(mgr.Dirty()) != 0 {
		t.Fatalf("expected no dirty meetings for a no-op replacement")
	}
}

func TestManager_FilteredMeetingList(t *testing.T) {
	t.Parallel()

	standup := newMeeting(t, "m-1", "Standup")
	retro := newMeeting(t, "m-2", "Retro")
	mgr, err := NewManager(standup, retro)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	mgr.UpdateFilteredMeetingList(func(m *meeting.Meeting) bool { return m.Title() == "Retro" })
	list := mgr.FilteredMeetingList()
	if len(list) != 1 || list[0] != retro {
		t.Fatalf("expected only Retro, got %v", list)
	}
	if len(mgr.Meetings()) != 2 {
		t.Fatalf("expected Meetings to ignore the filter")
	}

	mgr.ShowAllMeetings()
	if len(mgr.FilteredMeetingList()) != 2 {
		t.Fatalf("expected filter to be cleared")
	}
}

func TestManager_AddMeetingRejectsDuplicates(t *testing.T) {
	t.Parallel()

	mgr, err := NewManager(newMeeting(t, "m-1", "Standup"))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	if err := mgr.AddMeeting(newMeeting(t, "m-1", "Other")); !errors.Is(err, ErrDuplicateMeeting) {
		t.Fatalf("expected ErrDuplicateMeeting, got %v", err)
	}
	if err := mgr.AddMeeting(nil); err == nil {
		t.Fatalf("expected error for nil meeting")
	}
}
