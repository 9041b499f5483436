// Package model keeps the in-memory meeting book and the filtered view the
// commands operate on.
package model

import (
	"errors"
	"fmt"

	"github.com/example/meetingbook/internal/meeting"
)

var (
	// ErrMeetingNotFound is returned when a replacement target is not in the book.
	ErrMeetingNotFound = errors.New("model: meeting not found")
	// ErrDuplicateMeeting is returned when a meeting with the same ID is already stored.
	ErrDuplicateMeeting = errors.New("model: meeting already exists")
)

// Model exposes the operations commands need from the meeting book.
type Model interface {
	// FilteredMeetingList returns the meetings currently displayed, in order.
	FilteredMeetingList() []*meeting.Meeting
	// SetMeeting replaces target, matched by identity, with edited.
	SetMeeting(target, edited *meeting.Meeting) error
	// UpdateFilteredMeetingList changes which meetings are displayed.
	UpdateFilteredMeetingList(predicate Predicate)
}

// Predicate selects meetings for the displayed list.
type Predicate func(*meeting.Meeting) bool

// ShowAll is the predicate that keeps every meeting.
func ShowAll(*meeting.Meeting) bool {
	return true
}

// Manager is the in-memory Model implementation. It is not safe for
// concurrent use; callers run one command at a time.
type Manager struct {
	meetings []*meeting.Meeting
	filter   Predicate
	dirty    map[string]*meeting.Meeting
}

// NewManager returns a Manager holding the given meetings in order.
func NewManager(meetings ...*meeting.Meeting) (*Manager, error) {
	m := &Manager{
		filter: ShowAll,
		dirty:  make(map[string]*meeting.Meeting),
	}
	for _, mt := range meetings {
		if err := m.AddMeeting(mt); err != nil {
			return nil, err
		}
	}
	m.ClearDirty()
	return m, nil
}

// AddMeeting appends a meeting to the book.
func (m *Manager) AddMeeting(mt *meeting.Meeting) error {
	if mt == nil {
		return fmt.Errorf("model: meeting is nil")
	}
	for _, existing := range m.meetings {
		if existing.ID() == mt.ID() {
			return fmt.Errorf("%w: %s", ErrDuplicateMeeting, mt.ID())
		}
	}
	m.meetings = append(m.meetings, mt)
	m.dirty[mt.ID()] = mt
	return nil
}

// Meetings returns every meeting in the book, ignoring the filter.
func (m *Manager) Meetings() []*meeting.Meeting {
	out := make([]*meeting.Meeting, len(m.meetings))
	copy(out, m.meetings)
	return out
}

// FilteredMeetingList implements Model.
func (m *Manager) FilteredMeetingList() []*meeting.Meeting {
	out := make([]*meeting.Meeting, 0, len(m.meetings))
	for _, mt := range m.meetings {
		if m.filter(mt) {
			out = append(out, mt)
		}
	}
	return out
}

// UpdateFilteredMeetingList changes the predicate used for the displayed list.
// A nil predicate shows every meeting.
func (m *Manager) UpdateFilteredMeetingList(predicate Predicate) {
	if predicate == nil {
		predicate = ShowAll
	}
	m.filter = predicate
}

// ShowAllMeetings clears any active filter.
func (m *Manager) ShowAllMeetings() {
	m.UpdateFilteredMeetingList(ShowAll)
}

// SetMeeting implements Model. The target is located by pointer identity, not by
// ID or content, so a stale instance is rejected.
func (m *Manager) SetMeeting(target, edited *meeting.Meeting) error {
	if target == nil || edited == nil {
		return fmt.Errorf("model: meeting is nil")
	}
	for i, mt := range m.meetings {
		if mt != target {
			continue
		}
		if target == edited {
			return nil
		}
		m.meetings[i] = edited
		if edited.ID() != target.ID() {
			delete(m.dirty, target.ID())
		}
		m.dirty[edited.ID()] = edited
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMeetingNotFound, target.ID())
}

// Dirty returns meetings added or replaced since the last ClearDirty, in book order.
func (m *Manager) Dirty() []*meeting.Meeting {
	out := make([]*meeting.Meeting, 0, len(m.dirty))
	for _, mt := range m.meetings {
		if _, ok := m.dirty[mt.ID()]; ok {
			out = append(out, mt)
		}
	}
	return out
}

// ClearDirty forgets pending changes, typically after they were persisted.
func (m *Manager) ClearDirty() {
	clear(m.dirty)
}
