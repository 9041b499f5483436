package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/model"
)

const (
	// ListMeetingsWord is the command word for ListMeetingsCommand.
	ListMeetingsWord = "listm"
	// ListMeetingsUsage describes the command.
	ListMeetingsUsage = ListMeetingsWord + ": Lists all meetings.\nExample: " + ListMeetingsWord

	// FindMeetingsWord is the command word for FindMeetingsCommand.
	FindMeetingsWord = "findm"
	// FindMeetingsUsage describes the command parameters.
	FindMeetingsUsage = FindMeetingsWord + ": Finds meetings whose titles contain any of the given keywords (case-insensitive).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + FindMeetingsWord + " standup retro"
)

// ListMeetingsCommand shows every meeting.
type ListMeetingsCommand struct{}

// Word implements Command.
func (ListMeetingsCommand) Word() string {
	return ListMeetingsWord
}

// Execute implements Command.
func (ListMeetingsCommand) Execute(_ context.Context, m model.Model) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("commands: model is nil")
	}
	m.UpdateFilteredMeetingList(model.ShowAll)
	return Result{Feedback: "Listed all meetings", ShowMeetings: true}, nil
}

// FindMeetingsCommand narrows the displayed meetings by title keywords.
type FindMeetingsCommand struct {
	Keywords []string
}

// Word implements Command.
func (FindMeetingsCommand) Word() string {
	return FindMeetingsWord
}

// Execute implements Command.
func (c FindMeetingsCommand) Execute(_ context.Context, m model.Model) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("commands: model is nil")
	}
	m.UpdateFilteredMeetingList(titleContainsAny(c.Keywords))
	shown := m.FilteredMeetingList()
	return Result{Feedback: fmt.Sprintf("%d meetings listed!", len(shown)), ShowMeetings: true}, nil
}

func titleContainsAny(keywords []string) model.Predicate {
	lowered := lo.Map(keywords, func(k string, _ int) string { return strings.ToLower(k) })
	return func(mt *meeting.Meeting) bool {
		title := strings.ToLower(mt.Title())
		return lo.SomeBy(lowered, func(k string) bool { return strings.Contains(title, k) })
	}
}
