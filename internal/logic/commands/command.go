// Package commands implements the executable user commands of the meeting book.
package commands

import (
	"context"
	"errors"

	"github.com/example/meetingbook/internal/model"
)

// Messages in this block are shown to users verbatim.
var (
	// ErrInvalidMeetingIndex is returned when a meeting position is outside the displayed list.
	ErrInvalidMeetingIndex = errors.New("The meeting index provided is invalid")
	// ErrInvalidAttendeeIndex is returned when an attendee position is outside the meeting's attendees.
	ErrInvalidAttendeeIndex = errors.New("The attendee index provided is invalid")
)

// Result is the outcome of a successful command.
type Result struct {
	Feedback string
	// ShowMeetings asks the UI to render the displayed meeting list.
	ShowMeetings bool
	// Exit asks the caller to stop reading commands.
	Exit bool
}

// Command is a parsed user command ready to run against a model.
type Command interface {
	// Word returns the command word that produced the command.
	Word() string
	// Execute runs the command. A failed command leaves the model unchanged.
	Execute(ctx context.Context, m model.Model) (Result, error)
}
