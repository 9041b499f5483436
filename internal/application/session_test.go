package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/example/meetingbook/internal/logic/commands"
	"github.com/example/meetingbook/internal/logic/parser"
	"github.com/example/meetingbook/internal/persistence"
	"github.com/example/meetingbook/internal/testfixtures"
)

type meetingRepoStub struct {
	records []persistence.Meeting

	listErr   error
	createErr error
	updateErr error

	created []persistence.Meeting
	updated []persistence.Meeting
}

func (r *meetingRepoStub) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, meeting)
	r.records = append(r.records, meeting)
	return nil
}

func (r *meetingRepoStub) CreateMeetings(ctx context.Context, meetings []persistence.Meeting) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, meetings...)
	r.records = append(r.records, meetings...)
	return nil
}

func (r *meetingRepoStub) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.records {
		if existing.ID == meeting.ID {
			r.records[i] = meeting
			r.updated = append(r.updated, meeting)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *meetingRepoStub) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]persistence.Meeting, len(r.records))
	copy(out, r.records)
	return out, nil
}

var fixedNow = testfixtures.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)).NowFunc()

func storedMeetings() []persistence.Meeting {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return []persistence.Meeting{
		testfixtures.NewMeetingFixture(
			testfixtures.WithMeetingID("m-1"),
			testfixtures.WithTitle("Standup"),
			testfixtures.WithSpan(start, 15*time.Minute),
		).Record(),
		testfixtures.NewMeetingFixture(
			testfixtures.WithMeetingID("m-2"),
			testfixtures.WithTitle("Retro"),
			testfixtures.WithLocation(""),
			testfixtures.WithSpan(start.Add(24*time.Hour), time.Hour),
			testfixtures.WithAttendees("Carol"),
		).Record(),
	}
}

func newTestSession(t *testing.T, repo *meetingRepoStub, seed bool) *Session {
	t.Helper()
	session := NewSessionWithLogger(repo, fixedNow, seed, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return session
}

func TestSession_LoadReadsStoredMeetings(t *testing.T) {
	t.Parallel()

	repo := &meetingRepoStub{records: storedMeetings()}
	session := newTestSession(t, repo, true)

	meetings := session.Book().FilteredMeetingList()
	if len(meetings) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(meetings))
	}
	if meetings[0].ID() != "m-1" || meetings[0].Location() != "Room A" {
		t.Fatalf("unexpected first meeting: %s %q", meetings[0].ID(), meetings[0].Location())
	}
	if got := meetings[0].Attendees().Names(); len(got) != 2 || got[0] != "Alice" || got[1] != "Bob" {
		t.Fatalf("unexpected attendees: %v", got)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no seeding when storage has meetings")
	}
	if len(session.Book().Dirty()) != 0 {
		t.Fatalf("expected freshly loaded book to have no pending changes")
	}
}

func TestSession_LoadSeedsEmptyStorage(t *testing.T) {
	t.Parallel()

	t.Run("seeds when enabled", func(t *testing.T) {
		t.Parallel()

		repo := &meetingRepoStub{}
		session := newTestSession(t, repo, true)

		if len(repo.created) == 0 {
			t.Fatalf("expected sample meetings to be stored")
		}
		if got := len(session.Book().Meetings()); got != len(repo.created) {
			t.Fatalf("expected %d meetings in book, got %d", len(repo.created), got)
		}
		for _, record := range repo.created {
			if !record.Start.After(fixedNow()) {
				t.Fatalf("expected sample meeting %q to be scheduled after now", record.Title)
			}
		}
	})

	t.Run("stays empty when disabled", func(t *testing.T) {
		t.Parallel()

		repo := &meetingRepoStub{}
		session := newTestSession(t, repo, false)

		if len(repo.created) != 0 || len(session.Book().Meetings()) != 0 {
			t.Fatalf("expected no sample meetings")
		}
	})
}

func TestSession_LoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("list failure", func(t *testing.T) {
		t.Parallel()

		session := NewSession(&meetingRepoStub{listErr: errors.New("disk gone")}, fixedNow, true)
		if err := session.Load(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
		if session.Book() != nil {
			t.Fatalf("expected no book after failed load")
		}
	})

	t.Run("invalid stored meeting", func(t *testing.T) {
		t.Parallel()

		records := storedMeetings()
		records[1].Title = "   "
		session := NewSession(&meetingRepoStub{records: records}, fixedNow, true)
		if err := session.Load(context.Background()); ErrorKind(err) != "validation" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestSession_RunBeforeLoad(t *testing.T) {
	t.Parallel()

	session := NewSession(&meetingRepoStub{}, fixedNow, false)
	if _, err := session.Run(context.Background(), "listm"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestSession_RunRemoveAttendeePersists(t *testing.T) {
	t.Parallel()

	repo := &meetingRepoStub{records: storedMeetings()}
	session := newTestSession(t, repo, false)

	result, err := session.Run(context.Background(), "rmmc 1 2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Feedback != "Removed Person (Bob) from Meeting (Standup)" {
		t.Fatalf("unexpected feedback: %q", result.Feedback)
	}

	if len(repo.updated) != 1 {
		t.Fatalf("expected one meeting saved, got %d", len(repo.updated))
	}
	saved := repo.updated[0]
	if saved.ID != "m-1" || len(saved.Attendees) != 1 || saved.Attendees[0].Name != "Alice" {
		t.Fatalf("unexpected saved meeting: %+v", saved)
	}
	if saved.Attendees[0].PersonID == nil || *saved.Attendees[0].PersonID != "person-alice" {
		t.Fatalf("expected person reference to be kept")
	}
	if len(session.Book().Dirty()) != 0 {
		t.Fatalf("expected pending changes to be cleared after save")
	}
}

func TestSession_RunFailuresLeaveStorageUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "meeting index out of range", input: "rmmc 3 1", want: commands.ErrInvalidMeetingIndex},
		{name: "attendee index out of range", input: "rmmc 2 2", want: commands.ErrInvalidAttendeeIndex},
		{name: "non positive index", input: "rmmc 0 1", want: parser.ErrInvalidFormat},
		{name: "unknown word", input: "dance", want: parser.ErrUnknownCommand},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &meetingRepoStub{records: storedMeetings()}
			session := newTestSession(t, repo, false)

			if _, err := session.Run(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(repo.updated) != 0 || len(repo.created) != 0 {
				t.Fatalf("expected storage to be untouched")
			}
		})
	}
}

func TestSession_RunIndexesFilteredList(t *testing.T) {
	t.Parallel()

	repo := &meetingRepoStub{records: storedMeetings()}
	session := newTestSession(t, repo, false)
	ctx := context.Background()

	result, err := session.Run(ctx, "findm retro")
	if err != nil {
		t.Fatalf("findm failed: %v", err)
	}
	if !result.ShowMeetings {
		t.Fatalf("expected findm to request the meeting list")
	}

	result, err = session.Run(ctx, "rmmc 1 1")
	if err != nil {
		t.Fatalf("rmmc failed: %v", err)
	}
	if result.Feedback != "Removed Person (Carol) from Meeting (Retro)" {
		t.Fatalf("unexpected feedback: %q", result.Feedback)
	}
	if len(repo.updated) != 1 || repo.updated[0].ID != "m-2" {
		t.Fatalf("expected filtered meeting to be saved, got %+v", repo.updated)
	}
}

func TestSession_RunSaveFailureIsRetried(t *testing.T) {
	t.Parallel()

	repo := &meetingRepoStub{records: storedMeetings()}
	session := newTestSession(t, repo, false)
	ctx := context.Background()

	repo.updateErr = errors.New("database is locked")
	result, err := session.Run(ctx, "rmmc 1 1")
	if !errors.Is(err, ErrSaveFailed) {
		t.Fatalf("expected ErrSaveFailed, got %v", err)
	}
	if !strings.Contains(result.Feedback, "Alice") {
		t.Fatalf("expected command feedback alongside save error, got %q", result.Feedback)
	}
	if len(session.Book().Dirty()) != 1 {
		t.Fatalf("expected unsaved meeting to stay pending")
	}

	repo.updateErr = nil
	if _, err := session.Run(ctx, "listm"); err != nil {
		t.Fatalf("listm failed: %v", err)
	}
	if len(repo.updated) != 1 || len(repo.updated[0].Attendees) != 1 || repo.updated[0].Attendees[0].Name != "Bob" {
		t.Fatalf("expected pending meeting to be saved on next command, got %+v", repo.updated)
	}
}

func TestSession_RunExit(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, &meetingRepoStub{records: storedMeetings()}, false)
	result, err := session.Run(context.Background(), "exit")
	if err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if !result.Exit {
		t.Fatalf("expected exit result")
	}
}

func TestSession_ReloadKeepsMeetingTimes(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	sgt := time.FixedZone("SGT", 8*60*60)
	clock := testfixtures.NewClock(time.Date(2024, 3, 14, 8, 0, 0, 0, sgt))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := NewSessionWithLogger(harness.Meetings, clock.NowFunc(), true, logger)
	if err := first.Load(context.Background()); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if _, err := first.Run(context.Background(), "rmmc 1 1"); err != nil {
		t.Fatalf("rmmc failed: %v", err)
	}
	harness.Close()

	reopened := testfixtures.OpenSQLiteHarness(t, harness.Path)
	second := NewSessionWithLogger(reopened.Meetings, clock.NowFunc(), true, logger)
	if err := second.Load(context.Background()); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	const layout = "2006-01-02 15:04 MST"
	before := first.Book().FilteredMeetingList()
	after := second.Book().FilteredMeetingList()
	if len(before) != len(after) {
		t.Fatalf("expected %d meetings after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Fatalf("meeting %d changed after reload: %s vs %s", i+1, before[i].ID(), after[i].ID())
		}
		if got, want := after[i].Start().Format(layout), before[i].Start().Format(layout); got != want {
			t.Fatalf("meeting %d start shown as %s after reload, want %s", i+1, got, want)
		}
		if got, want := after[i].End().Format(layout), before[i].End().Format(layout); got != want {
			t.Fatalf("meeting %d end shown as %s after reload, want %s", i+1, got, want)
		}
	}
}

func TestSession_FailedSeedIsRetried(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	clashing := &clashingRepo{MeetingRepository: harness.Meetings}
	session := NewSessionWithLogger(clashing, fixedNow, true, logger)
	if err := session.Load(context.Background()); ErrorKind(err) != "already_exists" {
		t.Fatalf("expected duplicate error from seeding, got %v", err)
	}

	records, err := harness.Meetings.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected failed seeding to store nothing, got %d meetings", len(records))
	}

	session = NewSessionWithLogger(harness.Meetings, fixedNow, true, logger)
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(session.Book().Meetings()); got != len(sampleMeetings) {
		t.Fatalf("expected the full sample set, got %d meetings", got)
	}
}

// clashingRepo rewrites the last meeting of a batch to reuse the first ID.
type clashingRepo struct {
	MeetingRepository
}

func (r *clashingRepo) CreateMeetings(ctx context.Context, meetings []persistence.Meeting) error {
	batch := append([]persistence.Meeting(nil), meetings...)
	batch[len(batch)-1].ID = batch[0].ID
	return r.MeetingRepository.CreateMeetings(ctx, batch)
}
