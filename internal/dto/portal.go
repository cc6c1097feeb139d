package dto

import (
	"html/template"
	"time"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/calendar"
	"github.com/noah-isme/scholarhub-api/internal/models"
)

// EmptyState describes what a page shows when its collection is empty.
type EmptyState struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionLabel string `json:"action_label,omitempty"`
	ActionPath  string `json:"action_path,omitempty"`
}

// FilterOption is one selectable filter chip with the number of records it matches.
type FilterOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// StudentSummary is the header block of the dashboard.
type StudentSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Major     string `json:"major"`
	Year      int    `json:"year"`
	YearLabel string `json:"year_label"`
}

// StatCard is a single dashboard statistic.
type StatCard struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CourseCard is a course annotated with its enrollment figures.
type CourseCard struct {
	models.Course
	EnrollmentRatio   float64 `json:"enrollment_ratio"`
	EnrollmentPercent int     `json:"enrollment_percent"`
	NearCapacity      bool    `json:"near_capacity"`
	Full              bool    `json:"full"`
}

// EventItem is an event annotated with its badge colour.
type EventItem struct {
	models.Event
	Color string `json:"color"`
}

// AnnouncementCard is an announcement with its markdown content rendered to HTML.
type AnnouncementCard struct {
	models.Announcement
	HTML template.HTML `json:"html"`
}

// DashboardView is the payload of the dashboard page.
type DashboardView struct {
	Student       StudentSummary     `json:"student"`
	Stats         []StatCard         `json:"stats"`
	Courses       []CourseCard       `json:"courses"`
	CourseCount   int                `json:"course_count"`
	Announcements []AnnouncementCard `json:"announcements"`
	Deadlines     []EventItem        `json:"deadlines"`
	Empty         *EmptyState        `json:"empty,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// CoursesView is the payload of the courses page.
type CoursesView struct {
	Search  string         `json:"search"`
	Filter  string         `json:"filter"`
	Filters []FilterOption `json:"filters"`
	Courses []CourseCard   `json:"courses"`
	Total   int            `json:"total"`
	Empty   *EmptyState    `json:"empty,omitempty"`
}

// SemesterGroup lists the grades of one semester.
type SemesterGroup struct {
	Semester string         `json:"semester"`
	GPA      string         `json:"gpa"`
	Credits  int            `json:"credits"`
	Grades   []models.Grade `json:"grades"`
}

// GradesView is the payload of the grades page.
type GradesView struct {
	Semester     string                 `json:"semester"`
	Semesters    []string               `json:"semesters"`
	OverallGPA   string                 `json:"overall_gpa"`
	SelectedGPA  string                 `json:"selected_gpa"`
	Credits      int                    `json:"credits"`
	CourseCount  int                    `json:"course_count"`
	Distribution academics.Distribution `json:"distribution"`
	Groups       []SemesterGroup        `json:"groups"`
	Empty        *EmptyState            `json:"empty,omitempty"`
}

// CalendarView is the payload of the calendar page.
type CalendarView struct {
	Today          string             `json:"today"`
	SelectedDate   string             `json:"selected_date"`
	Grid           calendar.MonthGrid `json:"grid"`
	SelectedEvents []EventItem        `json:"selected_events"`
	Upcoming       []EventItem        `json:"upcoming"`
	Empty          *EmptyState        `json:"empty,omitempty"`
}

// AnnouncementsView is the payload of the announcements page.
type AnnouncementsView struct {
	Search        string             `json:"search"`
	Filter        string             `json:"filter"`
	Filters       []FilterOption     `json:"filters"`
	UnreadCount   int                `json:"unread_count"`
	Announcements []AnnouncementCard `json:"announcements"`
	Empty         *EmptyState        `json:"empty,omitempty"`
}

// ProfileView is the payload of the profile page.
type ProfileView struct {
	Student   models.Student `json:"student"`
	YearLabel string         `json:"year_label"`
	Initials  string         `json:"initials"`
}
