// Package application wires parsed commands to the meeting book and its storage.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/logic/commands"
	"github.com/example/meetingbook/internal/logic/parser"
	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/model"
	"github.com/example/meetingbook/internal/persistence"
)

// MeetingRepository is the storage the session loads from and saves to.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting persistence.Meeting) error
	CreateMeetings(ctx context.Context, meetings []persistence.Meeting) error
	UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error
	ListMeetings(ctx context.Context) ([]persistence.Meeting, error)
}

// Session runs user commands against an in-memory meeting book and keeps
// storage in step with it. It is not safe for concurrent use.
type Session struct {
	meetings   MeetingRepository
	now        func() time.Time
	seedSample bool
	logger     *slog.Logger

	book *model.Manager
}

// NewSession constructs a session with the provided dependencies.
func NewSession(meetings MeetingRepository, now func() time.Time, seedSample bool) *Session {
	return NewSessionWithLogger(meetings, now, seedSample, nil)
}

// NewSessionWithLogger constructs a session with a specified logger.
func NewSessionWithLogger(meetings MeetingRepository, now func() time.Time, seedSample bool, logger *slog.Logger) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{meetings: meetings, now: now, seedSample: seedSample, logger: defaultLogger(logger)}
}

func (s *Session) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return sessionLogger(ctx, s.logger, operation, attrs...)
}

// Load reads every stored meeting into a fresh meeting book. An empty store is
// seeded with sample meetings when seeding is enabled.
func (s *Session) Load(ctx context.Context) error {
	logger := s.loggerWith(ctx, "Load")

	records, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		logger.Error("failed to list meetings", "error_kind", ErrorKind(err), "error", err)
		return fmt.Errorf("load meetings: %w", err)
	}

	meetings := make([]*meeting.Meeting, 0, len(records))
	for _, record := range records {
		m, err := fromRecord(record)
		if err != nil {
			logger.Error("stored meeting is invalid", "meeting_id", record.ID, "error_kind", ErrorKind(err), "error", err)
			return fmt.Errorf("load meetings: %w", err)
		}
		meetings = append(meetings, m)
	}

	if len(meetings) == 0 && s.seedSample {
		meetings, err = s.seed(ctx)
		if err != nil {
			logger.Error("failed to seed sample meetings", "error_kind", ErrorKind(err), "error", err)
			return fmt.Errorf("seed meetings: %w", err)
		}
		logger.Info("sample meetings seeded", "meeting_count", len(meetings))
	}

	book, err := model.NewManager(meetings...)
	if err != nil {
		logger.Error("failed to build meeting book", "error_kind", ErrorKind(err), "error", err)
		return fmt.Errorf("load meetings: %w", err)
	}
	s.book = book

	logger.Info("meeting book loaded", "meeting_count", len(meetings))
	return nil
}

func (s *Session) seed(ctx context.Context) ([]*meeting.Meeting, error) {
	meetings, err := SampleMeetings(s.now())
	if err != nil {
		return nil, err
	}
	if err := s.meetings.CreateMeetings(ctx, lo.Map(meetings, func(m *meeting.Meeting, _ int) persistence.Meeting {
		return toRecord(m)
	})); err != nil {
		return nil, err
	}
	return meetings, nil
}

// Book returns the loaded meeting book, or nil before Load succeeds.
func (s *Session) Book() *model.Manager {
	return s.book
}

// Run parses and executes one line of input. Meetings changed by the command
// are written back to storage before Run returns. When saving fails the
// command's Result is still returned together with an error wrapping
// ErrSaveFailed; the unsaved meetings are retried after the next command.
func (s *Session) Run(ctx context.Context, line string) (commands.Result, error) {
	if s.book == nil {
		return commands.Result{}, ErrNotLoaded
	}

	cmd, err := parser.Parse(line)
	if err != nil {
		s.loggerWith(ctx, "Run").Warn("command rejected", "error_kind", ErrorKind(err), "error", err)
		return commands.Result{}, err
	}

	logger := s.loggerWith(ctx, "Run", "command", cmd.Word())

	result, err := cmd.Execute(ctx, s.book)
	if err != nil {
		logger.Warn("command failed", "error_kind", ErrorKind(err), "error", err)
		return commands.Result{}, err
	}

	if err := s.save(ctx); err != nil {
		logger.Error("failed to save changes", "error_kind", ErrorKind(err), "error", err)
		return result, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	logger.Info("command executed")
	return result, nil
}

func (s *Session) save(ctx context.Context) error {
	for _, m := range s.book.Dirty() {
		record := toRecord(m)
		err := s.meetings.UpdateMeeting(ctx, record)
		if errors.Is(err, persistence.ErrNotFound) {
			err = s.meetings.CreateMeeting(ctx, record)
		}
		if err != nil {
			return fmt.Errorf("meeting %s: %w", m.ID(), err)
		}
	}
	s.book.ClearDirty()
	return nil
}
