package commands

import (
	"context"
	"strings"

	"github.com/example/meetingbook/internal/model"
)

const (
	// HelpWord is the command word for HelpCommand.
	HelpWord = "help"
	// ExitWord is the command word for ExitCommand.
	ExitWord = "exit"
)

// HelpCommand prints usage for every command.
type HelpCommand struct{}

// Word implements Command.
func (HelpCommand) Word() string {
	return HelpWord
}

// Execute implements Command.
func (HelpCommand) Execute(context.Context, model.Model) (Result, error) {
	return Result{Feedback: strings.Join([]string{
		ListMeetingsUsage,
		FindMeetingsUsage,
		RemoveAttendeeUsage,
		ExitWord + ": Exits the program.",
	}, "\n\n")}, nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

// Word implements Command.
func (ExitCommand) Word() string {
	return ExitWord
}

// Execute implements Command.
func (ExitCommand) Execute(context.Context, model.Model) (Result, error) {
	return Result{Feedback: "Exiting meeting book as requested ...", Exit: true}, nil
}
