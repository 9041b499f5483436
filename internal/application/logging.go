package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/meetingbook/internal/logging"
	"github.com/example/meetingbook/internal/logic/commands"
	"github.com/example/meetingbook/internal/logic/parser"
	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/model"
	"github.com/example/meetingbook/internal/persistence"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func sessionLogger(ctx context.Context, base *slog.Logger, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"component", "Session"}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, parser.ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, parser.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, commands.ErrInvalidMeetingIndex):
		return "invalid_meeting_index"
	case errors.Is(err, commands.ErrInvalidAttendeeIndex):
		return "invalid_attendee_index"
	case errors.Is(err, model.ErrMeetingNotFound), errors.Is(err, persistence.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrDuplicateMeeting), errors.Is(err, persistence.ErrDuplicate):
		return "already_exists"
	case errors.Is(err, persistence.ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, ErrNotLoaded):
		return "not_loaded"
	}

	var vErr *meeting.ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
