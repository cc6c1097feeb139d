// Package calendar buckets academic events into month grids.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

const (
	// MonthLayout is the query format for a month anchor.
	MonthLayout = "2006-01"
	// DayLayout is the key format of a day cell.
	DayLayout = "2006-01-02"
	// DefaultMaxMarkers caps the visible event markers per day cell.
	DefaultMaxMarkers = 2
)

// Day is one cell of a month grid.
type Day struct {
	Date     string         `json:"date"`
	Weekday  string         `json:"weekday"`
	Today    bool           `json:"today"`
	Selected bool           `json:"selected"`
	Markers  []models.Event `json:"markers"`
	Overflow int            `json:"overflow"`
	Total    int            `json:"total"`
}

// OverflowLabel renders the "+N" indicator, or an empty string without overflow.
func (d Day) OverflowLabel() string {
	if d.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", d.Overflow)
}

// MonthGrid is a month of day cells.
type MonthGrid struct {
	Month        string `json:"month"`
	Label        string `json:"label"`
	LeadingBlank int    `json:"leading_blank"`
	Previous     string `json:"previous"`
	Next         string `json:"next"`
	Days         []Day  `json:"days"`
}

// StartOfMonth returns midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Month enumerates every day of anchor's month.
func Month(anchor time.Time) []time.Time {
	first := StartOfMonth(anchor)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Shift moves anchor by offset months and returns the first day of the resulting month.
func Shift(anchor time.Time, offset int) time.Time {
	return StartOfMonth(anchor).AddDate(0, offset, 0)
}

// Today returns the month anchor containing now.
func Today(now time.Time) time.Time {
	return StartOfMonth(now)
}

// ParseMonth reads a YYYY-MM anchor in loc.
func ParseMonth(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", raw, err)
	}
	return t, nil
}

// SameDay compares calendar days, ignoring the time of day. b is viewed in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EventsOn returns the events falling on day's calendar date, earliest first.
func EventsOn(day time.Time, events []models.Event) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if SameDay(day, e.Date) {
			out = append(out, e)
		}
	}
	SortByDate(out)
	return out
}

// SortByDate orders events chronologically, breaking ties by id.
func SortByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date)
	})
}

// BuildMonth lays out anchor's month, showing at most maxMarkers events per day and counting the
// rest as overflow. today and selected mark their cells; a zero selected marks nothing.
func BuildMonth(anchor time.Time, events []models.Event, today, selected time.Time, maxMarkers int) MonthGrid {
	if maxMarkers < 0 {
		maxMarkers = 0
	}
	first := StartOfMonth(anchor)
	grid := MonthGrid{
		Month:        first.Format(MonthLayout),
		Label:        first.Format("January 2006"),
		LeadingBlank: int(first.Weekday()),
		Previous:     Shift(first, -1).Format(MonthLayout),
		Next:         Shift(first, 1).Format(MonthLayout),
	}

	for _, d := range Month(first) {
		dayEvents := EventsOn(d, events)
		visible := dayEvents
		if len(visible) > maxMarkers {
			visible = visible[:maxMarkers]
		}
		grid.Days = append(grid.Days, Day{
			Date:     d.Format(DayLayout),
			Weekday:  d.Weekday().String(),
			Today:    SameDay(d, today),
			Selected: !selected.IsZero() && SameDay(d, selected),
			Markers:  visible,
			Overflow: len(dayEvents) - len(visible),
			Total:    len(dayEvents),
		})
	}
	return grid
}

// TypeColor maps an event type to its badge colour.
func TypeColor(t models.EventType) string {
	switch t {
	case models.EventTypeExam:
		return "error"
	case models.EventTypeAssignment:
		return "warning"
	case models.EventTypeLecture:
		return "primary"
	case models.EventTypeHoliday:
		return "success"
	default:
		return "info"
	}
}
