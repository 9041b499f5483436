// Package ui renders the displayed meeting list for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/example/meetingbook/internal/meeting"
)

const timeLayout = "2006-01-02 15:04"

// RenderMeetings writes meetings as a table. Meeting and attendee positions are
// one-based so they can be typed back into commands.
func RenderMeetings(w io.Writer, meetings []*meeting.Meeting) {
	if len(meetings) == 0 {
		fmt.Fprintln(w, "No meetings to show.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Location", "When", "Attendees"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, m := range meetings {
		table.Append([]string{
			strconv.Itoa(i + 1),
			m.Title(),
			lo.Ternary(m.Location() == "", "-", m.Location()),
			formatSpan(m),
			formatAttendees(m.Attendees()),
		})
	}
	table.Render()
}

func formatSpan(m *meeting.Meeting) string {
	start, end := m.Start(), m.End()
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format(timeLayout) + " - " + end.Format("15:04")
	}
	return start.Format(timeLayout) + " - " + end.Format(timeLayout)
}

func formatAttendees(attendees meeting.AttendeeSet) string {
	if attendees.Len() == 0 {
		return "-"
	}
	numbered := lo.Map(attendees.Names(), func(name string, i int) string {
		return fmt.Sprintf("%d. %s", i+1, name)
	})
	return strings.Join(numbered, ", ")
}
