package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/meetingbook/internal/persistence"
)

// MeetingRepository implements persistence.MeetingRepository using SQLite
type MeetingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
	retry  *RetryHelper
	now    func() time.Time
}

var _ persistence.MeetingRepository = (*MeetingRepository)(nil)

// NewMeetingRepository creates a new SQLite meeting repository
func NewMeetingRepository(pool *ConnectionPool) *MeetingRepository {
	return &MeetingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
		retry:  NewRetryHelper(DefaultRetryConfig()),
		now:    time.Now,
	}
}

// CreateMeeting inserts a meeting and its attendees
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	return r.CreateMeetings(ctx, []persistence.Meeting{meeting})
}

// CreateMeetings inserts every meeting in one transaction. Either all of them
// are stored or none is.
func (r *MeetingRepository) CreateMeetings(ctx context.Context, meetings []persistence.Meeting) error {
	for _, meeting := range meetings {
		if strings.TrimSpace(meeting.ID) == "" {
			return persistence.ErrConstraintViolation
		}
	}

	now := r.now().UTC()

	return r.retry.WithRetry(ctx, func() error {
		return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, meeting := range meetings {
				meeting.CreatedAt = now
				meeting.UpdatedAt = now
				if err := r.insertMeeting(ctx, tx, meeting); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (r *MeetingRepository) insertMeeting(ctx context.Context, tx *sql.Tx, meeting persistence.Meeting) error {
	const query = `
		INSERT INTO meetings (
			id, title, location,
			start_time, start_zone, start_offset,
			end_time, end_zone, end_offset,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	startZone, startOffset := meeting.Start.Zone()
	endZone, endOffset := meeting.End.Zone()
	if _, err := r.helper.ExecTx(ctx, tx, query,
		meeting.ID,
		meeting.Title,
		nullString(meeting.Location),
		formatTime(meeting.Start), startZone, startOffset,
		formatTime(meeting.End), endZone, endOffset,
		formatTime(meeting.CreatedAt),
		formatTime(meeting.UpdatedAt),
	); err != nil {
		return r.mapper.MapError(err)
	}

	return r.insertAttendees(ctx, tx, meeting.ID, meeting.Attendees)
}

// UpdateMeeting replaces a meeting's fields and attendee list
func (r *MeetingRepository) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if strings.TrimSpace(meeting.ID) == "" {
		return persistence.ErrNotFound
	}

	meeting.UpdatedAt = r.now().UTC()
	startZone, startOffset := meeting.Start.Zone()
	endZone, endOffset := meeting.End.Zone()

	return r.retry.WithRetry(ctx, func() error {
		return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			const query = `
				UPDATE meetings
				SET title = ?, location = ?,
					start_time = ?, start_zone = ?, start_offset = ?,
					end_time = ?, end_zone = ?, end_offset = ?,
					updated_at = ?
				WHERE id = ?
			`
			result, err := r.helper.ExecTx(ctx, tx, query,
				meeting.Title,
				nullString(meeting.Location),
				formatTime(meeting.Start), startZone, startOffset,
				formatTime(meeting.End), endZone, endOffset,
				formatTime(meeting.UpdatedAt),
				meeting.ID,
			)
			if err != nil {
				return r.mapper.MapError(err)
			}

			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return persistence.ErrNotFound
			}

			if _, err := r.helper.ExecTx(ctx, tx, "DELETE FROM meeting_attendees WHERE meeting_id = ?", meeting.ID); err != nil {
				return r.mapper.MapError(err)
			}

			return r.insertAttendees(ctx, tx, meeting.ID, meeting.Attendees)
		})
	})
}

// GetMeeting retrieves a meeting by ID
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	if id == "" {
		return persistence.Meeting{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, title, location, start_time, start_zone, start_offset,
			end_time, end_zone, end_offset, created_at, updated_at
		FROM meetings
		WHERE id = ?
	`

	meeting, err := scanMeeting(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Meeting{}, persistence.ErrNotFound
		}
		return persistence.Meeting{}, r.mapper.MapError(err)
	}

	attendees, err := r.loadAttendees(ctx, id)
	if err != nil {
		return persistence.Meeting{}, err
	}
	meeting.Attendees = attendees

	return meeting, nil
}

// ListMeetings returns all meetings ordered by start time
func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	const query = `
		SELECT id, title, location, start_time, start_zone, start_offset,
			end_time, end_zone, end_offset, created_at, updated_at
		FROM meetings
		ORDER BY start_time ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			rows.Close()
			return nil, r.mapper.MapError(err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, r.mapper.MapError(err)
	}
	// Closed before loading attendees so a single connection pool is not starved.
	rows.Close()

	for i := range meetings {
		attendees, err := r.loadAttendees(ctx, meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].Attendees = attendees
	}

	return meetings, nil
}

// DeleteMeeting removes a meeting and its attendees
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := r.helper.ExecTx(ctx, tx, "DELETE FROM meeting_attendees WHERE meeting_id = ?", id); err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(ctx, tx, "DELETE FROM meetings WHERE id = ?", id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

func (r *MeetingRepository) insertAttendees(ctx context.Context, tx *sql.Tx, meetingID string, attendees []persistence.Attendee) error {
	for position, attendee := range attendees {
		name := strings.TrimSpace(attendee.Name)
		if name == "" {
			return persistence.ErrConstraintViolation
		}
		if _, err := r.helper.ExecTx(ctx, tx,
			"INSERT INTO meeting_attendees (meeting_id, position, name, person_id) VALUES (?, ?, ?, ?)",
			meetingID, position, name, nullString(attendee.PersonID)); err != nil {
			return r.mapper.MapError(err)
		}
	}
	return nil
}

func (r *MeetingRepository) loadAttendees(ctx context.Context, meetingID string) ([]persistence.Attendee, error) {
	const query = `
		SELECT name, person_id
		FROM meeting_attendees
		WHERE meeting_id = ?
		ORDER BY position ASC
	`

	rows, err := r.helper.Query(ctx, query, meetingID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	attendees := []persistence.Attendee{}
	for rows.Next() {
		var attendee persistence.Attendee
		var personID sql.NullString
		if err := rows.Scan(&attendee.Name, &personID); err != nil {
			return nil, r.mapper.MapError(err)
		}
		if personID.Valid {
			attendee.PersonID = &personID.String
		}
		attendees = append(attendees, attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return attendees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var location sql.NullString
	var startStr, endStr, createdAtStr, updatedAtStr string
	var startZone, endZone string
	var startOffset, endOffset int

	if err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&location,
		&startStr, &startZone, &startOffset,
		&endStr, &endZone, &endOffset,
		&createdAtStr,
		&updatedAtStr,
	); err != nil {
		return persistence.Meeting{}, err
	}

	if location.Valid {
		meeting.Location = &location.String
	}

	var err error
	if meeting.Start, err = parseTime(startStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("failed to parse start_time: %w", err)
	}
	if meeting.End, err = parseTime(endStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("failed to parse end_time: %w", err)
	}
	if meeting.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if meeting.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	meeting.Start = inZone(meeting.Start, startZone, startOffset)
	meeting.End = inZone(meeting.End, endZone, endOffset)

	return meeting, nil
}

// timeLayout is fixed width so stored values order and compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// inZone restores the zone a time was saved in. UTC and the process's local
// zone map back to their *time.Location; other zones become fixed offsets.
func inZone(t time.Time, name string, offset int) time.Time {
	if name == "UTC" && offset == 0 {
		return t.UTC()
	}
	if localName, localOffset := t.In(time.Local).Zone(); localName == name && localOffset == offset {
		return t.In(time.Local)
	}
	return t.In(time.FixedZone(name, offset))
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
