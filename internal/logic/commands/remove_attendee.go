package commands

import (
	"context"
	"fmt"

	"github.com/example/meetingbook/internal/index"
	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/model"
)

const (
	// RemoveAttendeeWord is the command word for RemoveAttendeeCommand.
	RemoveAttendeeWord = "rmmc"

	// RemoveAttendeeUsage describes the command parameters.
	RemoveAttendeeUsage = RemoveAttendeeWord + ": Removes the attendee indicated by the attendee index in the attendees list of the meeting indicated by the meeting index.\n" +
		"Parameters: MEETING_INDEX ATTENDEE_INDEX\n" +
		"Example: " + RemoveAttendeeWord + " 1 1"

	removeAttendeeSuccess = "Removed Person (%s) from Meeting (%s)"
)

// RemoveAttendeeCommand removes one attendee from a displayed meeting.
type RemoveAttendeeCommand struct {
	MeetingIndex  index.Index
	AttendeeIndex index.Index
}

// NewRemoveAttendeeCommand returns a command for the given positions.
func NewRemoveAttendeeCommand(meetingIndex, attendeeIndex index.Index) RemoveAttendeeCommand {
	return RemoveAttendeeCommand{MeetingIndex: meetingIndex, AttendeeIndex: attendeeIndex}
}

// Word implements Command.
func (c RemoveAttendeeCommand) Word() string {
	return RemoveAttendeeWord
}

// Execute implements Command.
func (c RemoveAttendeeCommand) Execute(_ context.Context, m model.Model) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("commands: model is nil")
	}

	shown := m.FilteredMeetingList()
	if !c.MeetingIndex.Within(len(shown)) {
		return Result{}, ErrInvalidMeetingIndex
	}
	target := shown[c.MeetingIndex.ZeroBased()]

	attendees := target.Attendees()
	if !c.AttendeeIndex.Within(attendees.Len()) {
		return Result{}, ErrInvalidAttendeeIndex
	}
	removed, err := attendees.Get(c.AttendeeIndex)
	if err != nil {
		return Result{}, ErrInvalidAttendeeIndex
	}

	edited := withAttendees(target, attendees.Without(removed))
	if err := m.SetMeeting(target, edited); err != nil {
		return Result{}, err
	}

	return Result{Feedback: fmt.Sprintf(removeAttendeeSuccess, removed.Name, target.Title())}, nil
}

// Equal reports whether other is a RemoveAttendeeCommand with the same positions.
func (c RemoveAttendeeCommand) Equal(other Command) bool {
	o, ok := other.(RemoveAttendeeCommand)
	return ok && o.MeetingIndex == c.MeetingIndex && o.AttendeeIndex == c.AttendeeIndex
}

func (c RemoveAttendeeCommand) String() string {
	return fmt.Sprintf("RemoveAttendeeCommand{meetingIndex=%s, attendeeIndex=%s}", c.MeetingIndex, c.AttendeeIndex)
}

// withAttendees returns mt unchanged when the attendee set did not change.
func withAttendees(mt *meeting.Meeting, attendees meeting.AttendeeSet) *meeting.Meeting {
	if attendees.Equal(mt.Attendees()) {
		return mt
	}
	return mt.WithAttendees(attendees)
}
