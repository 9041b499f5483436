package persistence

import "context"

// MeetingRepository stores meetings keyed by their stable ID.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) error
	// CreateMeetings stores all meetings or none of them.
	CreateMeetings(ctx context.Context, meetings []Meeting) error
	UpdateMeeting(ctx context.Context, meeting Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}
