package application

import (
	"time"

	"github.com/example/meetingbook/internal/meeting"
)

type sampleMeeting struct {
	title     string
	location  string
	dayOffset int
	hour      int
	duration  time.Duration
	attendees []string
}

var sampleMeetings = []sampleMeeting{
	{title: "Project Kickoff", location: "Conference Room A", dayOffset: 1, hour: 9, duration: time.Hour, attendees: []string{"Alex Yeoh", "Bernice Yu", "Charlotte Oliveiro"}},
	{title: "Design Review", location: "Level 3 Lounge", dayOffset: 2, hour: 14, duration: 90 * time.Minute, attendees: []string{"David Li", "Irfan Ibrahim"}},
	{title: "Weekly Sync", location: "", dayOffset: 3, hour: 10, duration: 30 * time.Minute, attendees: []string{"Alex Yeoh", "Roy Balakrishnan"}},
}

// SampleMeetings returns the meetings seeded into an empty book, scheduled in
// the days after now.
func SampleMeetings(now time.Time) ([]*meeting.Meeting, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	meetings := make([]*meeting.Meeting, 0, len(sampleMeetings))
	for _, sample := range sampleMeetings {
		attendees := make([]meeting.Attendee, 0, len(sample.attendees))
		for _, name := range sample.attendees {
			attendee, err := meeting.NewAttendee(name, "")
			if err != nil {
				return nil, err
			}
			attendees = append(attendees, attendee)
		}

		start := day.AddDate(0, 0, sample.dayOffset).Add(time.Duration(sample.hour) * time.Hour)
		m, err := meeting.New(meeting.Params{
			Title:     sample.title,
			Location:  sample.location,
			Start:     start,
			End:       start.Add(sample.duration),
			Attendees: meeting.NewAttendeeSet(attendees...),
		})
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}
