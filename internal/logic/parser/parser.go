// Package parser turns a line of user input into a command.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/index"
	"github.com/example/meetingbook/internal/logic/commands"
)

var (
	// ErrUnknownCommand is returned when the command word is not recognised.
	ErrUnknownCommand = errors.New("Unknown command")
	// ErrInvalidFormat is returned when arguments do not match the command usage.
	ErrInvalidFormat = errors.New("Invalid command format!")
)

// ParseError reports malformed input together with the usage that applies.
type ParseError struct {
	Usage string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Usage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\n%s", e.Err, e.Usage)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a full input line.
func Parse(input string) (commands.Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, &ParseError{Usage: commands.HelpWord + ": Shows program usage instructions.", Err: ErrInvalidFormat}
	}

	word, args := fields[0], fields[1:]
	switch word {
	case commands.RemoveAttendeeWord:
		return parseRemoveAttendee(args)
	case commands.ListMeetingsWord:
		return commands.ListMeetingsCommand{}, nil
	case commands.FindMeetingsWord:
		if len(args) == 0 {
			return nil, &ParseError{Usage: commands.FindMeetingsUsage, Err: ErrInvalidFormat}
		}
		return commands.FindMeetingsCommand{Keywords: lo.Uniq(args)}, nil
	case commands.HelpWord:
		return commands.HelpCommand{}, nil
	case commands.ExitWord:
		return commands.ExitCommand{}, nil
	default:
		return nil, &ParseError{Err: ErrUnknownCommand}
	}
}

func parseRemoveAttendee(args []string) (commands.Command, error) {
	if len(args) != 2 {
		return nil, &ParseError{Usage: commands.RemoveAttendeeUsage, Err: ErrInvalidFormat}
	}

	meetingIndex, err := ParseIndex(args[0])
	if err != nil {
		return nil, &ParseError{Usage: commands.RemoveAttendeeUsage, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}
	attendeeIndex, err := ParseIndex(args[1])
	if err != nil {
		return nil, &ParseError{Usage: commands.RemoveAttendeeUsage, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}

	return commands.NewRemoveAttendeeCommand(meetingIndex, attendeeIndex), nil
}

// ParseIndex parses a one-based position typed by the user.
func ParseIndex(value string) (index.Index, error) {
	trimmed := strings.TrimSpace(value)
	n, err := strconv.ParseUint(trimmed, 10, strconv.IntSize-1)
	if err != nil || n == 0 {
		return index.Index{}, fmt.Errorf("Index is not a non-zero unsigned integer: %q", trimmed)
	}
	return index.FromOneBased(int(n))
}
