package models

import "time"

// EventType classifies calendar entries.
type EventType string

const (
	EventTypeExam       EventType = "exam"
	EventTypeAssignment EventType = "assignment"
	EventTypeLecture    EventType = "lecture"
	EventTypeHoliday    EventType = "holiday"
	EventTypeOther      EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeExam, EventTypeAssignment, EventTypeLecture, EventTypeHoliday, EventTypeOther:
		return true
	}
	return false
}

// Event is an academic calendar entry. Time is a display string such as "10:00 AM".
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Type        EventType `json:"type"`
}
