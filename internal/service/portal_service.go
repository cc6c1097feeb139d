package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/calendar"
	"github.com/noah-isme/scholarhub-api/internal/dto"
	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

const (
	coursesLoadFailed       = "Failed to load courses"
	gradesLoadFailed        = "Failed to load grades"
	calendarLoadFailed      = "Failed to load calendar events"
	announcementsLoadFailed = "Failed to load announcements"
	profileLoadFailed       = "Failed to load profile"

	calendarUpcomingLimit = 5
)

// Announcement page filters beyond the priorities.
const (
	AnnouncementFilterAll    = "all"
	AnnouncementFilterUnread = "unread"
)

// CoursesQuery holds the courses page search and filter.
type CoursesQuery struct {
	Search string `form:"search"`
	Filter string `form:"filter"`
}

// GradesQuery selects the semester shown on the grades page.
type GradesQuery struct {
	Semester string `form:"semester"`
}

// CalendarQuery positions the calendar. Month is YYYY-MM and defaults to the current month; Offset
// shifts it by whole months; Today resets to the current month; Date (YYYY-MM-DD) selects a day.
type CalendarQuery struct {
	Month  string `form:"month"`
	Offset int    `form:"offset"`
	Today  bool   `form:"today"`
	Date   string `form:"date"`
}

// AnnouncementsQuery holds the announcements page search and filter.
type AnnouncementsQuery struct {
	Search string `form:"search"`
	Filter string `form:"filter"`
}

type portalCourses interface {
	Enrolled(ctx context.Context, studentID int) ([]models.Course, error)
}

type portalGrades interface {
	ForStudent(ctx context.Context, studentID int) ([]models.Grade, error)
}

type portalEvents interface {
	List(ctx context.Context) ([]models.Event, error)
	Upcoming(ctx context.Context, limit int) ([]models.Event, error)
}

type portalAnnouncements interface {
	List(ctx context.Context) ([]models.Announcement, error)
}

type portalProfiles interface {
	Profile(ctx context.Context, studentID int) (*models.Student, error)
	UpdateProfile(ctx context.Context, studentID int, req UpdateProfileRequest) (*models.Student, error)
}

// PortalServiceParams groups constructor dependencies.
type PortalServiceParams struct {
	Courses       portalCourses
	Grades        portalGrades
	Events        portalEvents
	Announcements portalAnnouncements
	Profiles      portalProfiles
	Logger        *zap.Logger
	Location      *time.Location
}

// PortalService builds the page payloads other than the dashboard: it loads records through the
// entity services and applies each page's search, filters and aggregations.
type PortalService struct {
	courses       portalCourses
	grades        portalGrades
	events        portalEvents
	announcements portalAnnouncements
	profiles      portalProfiles
	logger        *zap.Logger
	location      *time.Location
	now           func() time.Time
}

// NewPortalService constructs the portal view service.
func NewPortalService(params PortalServiceParams) *PortalService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &PortalService{
		courses:       params.Courses,
		grades:        params.Grades,
		events:        params.Events,
		announcements: params.Announcements,
		profiles:      params.Profiles,
		logger:        logger,
		location:      loc,
		now:           time.Now,
	}
}

// Courses returns the courses page for studentID. Filter counts cover every course regardless of
// the search term.
func (s *PortalService) Courses(ctx context.Context, studentID int, query CoursesQuery) (*dto.CoursesView, error) {
	filter := models.CourseFilter(strings.TrimSpace(query.Filter))
	if filter == "" {
		filter = models.CourseFilterAll
	}
	if !validCourseFilter(filter) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown course filter")
	}

	courses, err := s.courses.Enrolled(ctx, studentID)
	if err != nil {
		return nil, loadFailed(err, coursesLoadFailed)
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	matched := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if search != "" && !containsFold(c.Name, search) && !containsFold(c.Code, search) && !containsFold(c.Instructor, search) {
			continue
		}
		if !matchesCourseFilter(c, filter) {
			continue
		}
		matched = append(matched, c)
	}

	view := &dto.CoursesView{
		Search: query.Search,
		Filter: string(filter),
		Filters: []dto.FilterOption{
			courseFilterOption(courses, models.CourseFilterAll, "All Courses", filter),
			courseFilterOption(courses, models.CourseFilterHighEnrollment, "High Enrollment", filter),
			courseFilterOption(courses, models.CourseFilterMorning, "Morning Classes", filter),
			courseFilterOption(courses, models.CourseFilterAfternoon, "Afternoon Classes", filter),
		},
		Courses: courseCards(matched),
		Total:   len(courses),
	}
	if len(matched) == 0 {
		view.Empty = &dto.EmptyState{
			Icon:        "BookOpen",
			Title:       "No courses enrolled",
			Description: "You haven't enrolled in any courses yet.",
			ActionLabel: "Browse Courses",
			ActionPath:  "/courses",
		}
		if search != "" || filter != models.CourseFilterAll {
			view.Empty.Title = "No courses found"
			view.Empty.Description = "Try adjusting your search terms or filters."
		}
	}
	return view, nil
}

// Grades returns the grades page. Semester "all" (the default) selects every grade; the overall GPA
// always covers every grade.
func (s *PortalService) Grades(ctx context.Context, studentID int, query GradesQuery) (*dto.GradesView, error) {
	semester := strings.TrimSpace(query.Semester)
	if semester == "" {
		semester = models.SemesterAll
	}

	grades, err := s.grades.ForStudent(ctx, studentID)
	if err != nil {
		return nil, loadFailed(err, gradesLoadFailed)
	}

	selected := academics.FilterBySemester(grades, semester)
	view := &dto.GradesView{
		Semester:     semester,
		Semesters:    academics.Semesters(grades),
		OverallGPA:   academics.FormatGPA(academics.ComputeGPA(grades)),
		SelectedGPA:  academics.FormatGPA(academics.ComputeGPA(selected)),
		Credits:      academics.TotalCredits(selected),
		CourseCount:  len(selected),
		Distribution: academics.GradeDistribution(selected),
		Groups:       []dto.SemesterGroup{},
	}
	for _, term := range BuildTranscript(selected) {
		view.Groups = append(view.Groups, dto.SemesterGroup{
			Semester: term.Semester,
			GPA:      academics.FormatGPA(term.GPA),
			Credits:  term.Credits,
			Grades:   term.Grades,
		})
	}
	if len(selected) == 0 {
		view.Empty = &dto.EmptyState{
			Icon:        "Award",
			Title:       "No grades available",
			Description: "No grades found for the selected semester.",
		}
	}
	return view, nil
}

// Calendar returns the month grid, the selected day's events and the next upcoming events.
func (s *PortalService) Calendar(ctx context.Context, query CalendarQuery) (*dto.CalendarView, error) {
	now := s.now().In(s.location)
	anchor := calendar.Today(now)
	if query.Month != "" && !query.Today {
		parsed, err := calendar.ParseMonth(query.Month, s.location)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be formatted YYYY-MM")
		}
		anchor = parsed
	}
	if query.Offset != 0 && !query.Today {
		anchor = calendar.Shift(anchor, query.Offset)
	}

	selected := calendar.StartOfDay(now)
	if query.Date != "" {
		parsed, err := time.ParseInLocation(calendar.DayLayout, query.Date, s.location)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted YYYY-MM-DD")
		}
		selected = parsed
	}

	var events, upcoming []models.Event
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = s.events.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = s.events.Upcoming(gctx, calendarUpcomingLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, loadFailed(err, calendarLoadFailed)
	}

	view := &dto.CalendarView{
		Today:          now.Format(calendar.DayLayout),
		SelectedDate:   selected.Format(calendar.DayLayout),
		Grid:           calendar.BuildMonth(anchor, events, now, selected, calendar.DefaultMaxMarkers),
		SelectedEvents: eventItems(calendar.EventsOn(selected, events)),
		Upcoming:       eventItems(upcoming),
	}
	if len(upcoming) == 0 {
		view.Empty = &dto.EmptyState{
			Icon:        "Calendar",
			Title:       "No upcoming events",
			Description: "Your calendar is clear for now.",
		}
	}
	return view, nil
}

// Announcements returns the announcements page. Filter is one of all, unread, high, medium or low;
// counts cover every announcement regardless of the search term.
func (s *PortalService) Announcements(ctx context.Context, query AnnouncementsQuery) (*dto.AnnouncementsView, error) {
	filter := strings.ToLower(strings.TrimSpace(query.Filter))
	if filter == "" {
		filter = AnnouncementFilterAll
	}
	if filter != AnnouncementFilterAll && filter != AnnouncementFilterUnread && !models.AnnouncementPriority(filter).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown announcement filter")
	}

	items, err := s.announcements.List(ctx)
	if err != nil {
		return nil, loadFailed(err, announcementsLoadFailed)
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	matched := make([]models.Announcement, 0, len(items))
	for _, a := range items {
		if search != "" && !containsFold(a.Title, search) && !containsFold(a.Content, search) {
			continue
		}
		if !matchesAnnouncementFilter(a, filter) {
			continue
		}
		matched = append(matched, a)
	}

	view := &dto.AnnouncementsView{
		Search: query.Search,
		Filter: filter,
		Filters: []dto.FilterOption{
			announcementFilterOption(items, AnnouncementFilterAll, "All", filter),
			announcementFilterOption(items, AnnouncementFilterUnread, "Unread", filter),
			announcementFilterOption(items, string(models.AnnouncementPriorityHigh), "High Priority", filter),
			announcementFilterOption(items, string(models.AnnouncementPriorityMedium), "Medium Priority", filter),
			announcementFilterOption(items, string(models.AnnouncementPriorityLow), "Low Priority", filter),
		},
		Announcements: announcementCards(matched),
	}
	view.UnreadCount = view.Filters[1].Count
	if len(matched) == 0 {
		view.Empty = &dto.EmptyState{
			Icon:        "Bell",
			Title:       "No announcements",
			Description: "No announcements available at the moment.",
		}
		if search != "" || filter != AnnouncementFilterAll {
			view.Empty.Title = "No announcements found"
			view.Empty.Description = "Try adjusting your search terms or filters."
		}
	}
	return view, nil
}

// Profile returns the profile page of studentID.
func (s *PortalService) Profile(ctx context.Context, studentID int) (*dto.ProfileView, error) {
	student, err := s.profiles.Profile(ctx, studentID)
	if err != nil {
		return nil, loadFailed(err, profileLoadFailed)
	}
	return profileView(student), nil
}

// UpdateProfile applies a profile edit and returns the refreshed page.
func (s *PortalService) UpdateProfile(ctx context.Context, studentID int, req UpdateProfileRequest) (*dto.ProfileView, error) {
	student, err := s.profiles.UpdateProfile(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	return profileView(student), nil
}

func profileView(student *models.Student) *dto.ProfileView {
	return &dto.ProfileView{
		Student:   *student,
		YearLabel: yearLabel(student.Year),
		Initials:  initials(student.Name),
	}
}

func validCourseFilter(filter models.CourseFilter) bool {
	switch filter {
	case models.CourseFilterAll, models.CourseFilterHighEnrollment, models.CourseFilterMorning, models.CourseFilterAfternoon:
		return true
	}
	return false
}

func matchesCourseFilter(c models.Course, filter models.CourseFilter) bool {
	switch filter {
	case models.CourseFilterHighEnrollment:
		return academics.NearCapacity(c.Enrolled, c.Capacity)
	case models.CourseFilterMorning:
		return strings.Contains(c.Schedule, "AM")
	case models.CourseFilterAfternoon:
		return strings.Contains(c.Schedule, "PM")
	default:
		return true
	}
}

func courseFilterOption(courses []models.Course, filter models.CourseFilter, label string, selected models.CourseFilter) dto.FilterOption {
	count := 0
	for _, c := range courses {
		if matchesCourseFilter(c, filter) {
			count++
		}
	}
	return dto.FilterOption{Key: string(filter), Label: label, Count: count, Selected: filter == selected}
}

func matchesAnnouncementFilter(a models.Announcement, filter string) bool {
	switch filter {
	case AnnouncementFilterAll:
		return true
	case AnnouncementFilterUnread:
		return !a.Read
	default:
		return string(a.Priority) == filter
	}
}

func announcementFilterOption(items []models.Announcement, filter, label, selected string) dto.FilterOption {
	count := 0
	for _, a := range items {
		if matchesAnnouncementFilter(a, filter) {
			count++
		}
	}
	return dto.FilterOption{Key: filter, Label: label, Count: count, Selected: filter == selected}
}
