package application

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/meeting"
	"github.com/example/meetingbook/internal/persistence"
)

func toRecord(m *meeting.Meeting) persistence.Meeting {
	record := persistence.Meeting{
		ID:    m.ID(),
		Title: m.Title(),
		Start: m.Start(),
		End:   m.End(),
		Attendees: lo.Map(m.Attendees().Slice(), func(a meeting.Attendee, _ int) persistence.Attendee {
			return persistence.Attendee{Name: a.Name, PersonID: optional(a.PersonID)}
		}),
	}
	record.Location = optional(m.Location())
	return record
}

func fromRecord(record persistence.Meeting) (*meeting.Meeting, error) {
	attendees := make([]meeting.Attendee, 0, len(record.Attendees))
	for _, a := range record.Attendees {
		attendee, err := meeting.NewAttendee(a.Name, lo.FromPtr(a.PersonID))
		if err != nil {
			return nil, fmt.Errorf("meeting %s: %w", record.ID, err)
		}
		attendees = append(attendees, attendee)
	}

	m, err := meeting.New(meeting.Params{
		ID:        record.ID,
		Title:     record.Title,
		Location:  lo.FromPtr(record.Location),
		Start:     record.Start,
		End:       record.End,
		Attendees: meeting.NewAttendeeSet(attendees...),
	})
	if err != nil {
		return nil, fmt.Errorf("meeting %s: %w", record.ID, err)
	}
	return m, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
