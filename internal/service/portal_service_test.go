package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

func newTestPortal(t *testing.T) (*PortalService, testServices) {
	t.Helper()
	svcs := newTestServices(t)
	svcs.events.now = func() time.Time { return referenceNow }
	portal := NewPortalService(PortalServiceParams{
		Courses:       svcs.courses,
		Grades:        svcs.grades,
		Events:        svcs.events,
		Announcements: svcs.announcements,
		Profiles:      svcs.students,
	})
	portal.now = func() time.Time { return referenceNow }
	return portal, svcs
}

func TestPortalCoursesFilters(t *testing.T) {
	portal, _ := newTestPortal(t)
	ctx := context.Background()

	view, err := portal.Courses(ctx, 1, CoursesQuery{})
	require.NoError(t, err)
	assert.Len(t, view.Courses, 6)
	counts := map[string]int{}
	for _, f := range view.Filters {
		counts[f.Key] = f.Count
	}
	assert.Equal(t, 6, counts["all"])
	assert.Equal(t, 3, counts["high-enrollment"])
	assert.Equal(t, 3, counts["morning"])
	assert.Equal(t, 3, counts["afternoon"])

	view, err = portal.Courses(ctx, 1, CoursesQuery{Search: "dr. robert"})
	require.NoError(t, err)
	require.Len(t, view.Courses, 1)
	assert.Equal(t, "CS 350", view.Courses[0].Code)
	assert.True(t, view.Courses[0].Full)
	assert.True(t, view.Courses[0].NearCapacity)
	assert.Equal(t, 100, view.Courses[0].EnrollmentPercent)

	view, err = portal.Courses(ctx, 1, CoursesQuery{Search: "zzz"})
	require.NoError(t, err)
	require.NotNil(t, view.Empty)
	assert.Equal(t, "No courses found", view.Empty.Title)

	_, err = portal.Courses(ctx, 1, CoursesQuery{Filter: "evening"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestPortalGradesSemesterSelection(t *testing.T) {
	portal, _ := newTestPortal(t)
	ctx := context.Background()

	all, err := portal.Grades(ctx, 1, GradesQuery{})
	require.NoError(t, err)
	assert.Equal(t, models.SemesterAll, all.Semester)
	assert.Equal(t, "3.46", all.OverallGPA)
	assert.Equal(t, all.OverallGPA, all.SelectedGPA)
	assert.Equal(t, 38, all.Credits)
	assert.Equal(t, []string{"Spring 2026", "Fall 2025", "Spring 2025", "Fall 2024"}, all.Semesters)
	assert.Len(t, all.Groups, 4)
	assert.Equal(t, 12, all.Distribution.Total())

	fall, err := portal.Grades(ctx, 1, GradesQuery{Semester: "Fall 2025"})
	require.NoError(t, err)
	assert.Equal(t, "3.46", fall.OverallGPA)
	assert.Equal(t, "3.33", fall.SelectedGPA)
	assert.Equal(t, 9, fall.Credits)
	assert.Equal(t, 3, fall.CourseCount)

	none, err := portal.Grades(ctx, 1, GradesQuery{Semester: "Summer 1999"})
	require.NoError(t, err)
	require.NotNil(t, none.Empty)
	assert.Equal(t, "0.00", none.SelectedGPA)
}

func TestPortalCalendar(t *testing.T) {
	portal, _ := newTestPortal(t)
	ctx := context.Background()

	view, err := portal.Calendar(ctx, CalendarQuery{Date: "2026-10-27"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", view.Today)
	assert.Equal(t, "2026-10", view.Grid.Month)
	assert.Len(t, view.SelectedEvents, 3)
	require.Len(t, view.Upcoming, 5)
	assert.Equal(t, 1, view.Upcoming[0].ID)

	next, err := portal.Calendar(ctx, CalendarQuery{Month: "2026-10", Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, "2026-11", next.Grid.Month)

	reset, err := portal.Calendar(ctx, CalendarQuery{Month: "2027-03", Today: true})
	require.NoError(t, err)
	assert.Equal(t, "2026-10", reset.Grid.Month)

	_, err = portal.Calendar(ctx, CalendarQuery{Month: "October"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestPortalAnnouncements(t *testing.T) {
	portal, svcs := newTestPortal(t)
	ctx := context.Background()

	view, err := portal.Announcements(ctx, AnnouncementsQuery{Filter: "unread"})
	require.NoError(t, err)
	assert.Len(t, view.Announcements, 4)
	assert.Equal(t, 4, view.UnreadCount)

	view, err = portal.Announcements(ctx, AnnouncementsQuery{Search: "scholarship"})
	require.NoError(t, err)
	require.Len(t, view.Announcements, 1)
	assert.True(t, strings.Contains(string(view.Announcements[0].HTML), "<strong>October 31</strong>"))

	_, err = svcs.announcements.MarkAllRead(ctx)
	require.NoError(t, err)
	view, err = portal.Announcements(ctx, AnnouncementsQuery{Filter: "unread"})
	require.NoError(t, err)
	require.NotNil(t, view.Empty)
	assert.Equal(t, "No announcements found", view.Empty.Title)
	assert.Zero(t, view.UnreadCount)
}

func TestPortalProfile(t *testing.T) {
	portal, _ := newTestPortal(t)
	ctx := context.Background()

	view, err := portal.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "JS", view.Initials)
	assert.Equal(t, "3rd Year", view.YearLabel)

	updated, err := portal.UpdateProfile(ctx, 1, UpdateProfileRequest{Name: strPtr("Johnny Smith")})
	require.NoError(t, err)
	assert.Equal(t, "Johnny Smith", updated.Student.Name)

	_, err = portal.Profile(ctx, 77)
	require.ErrorIs(t, err, appErrors.ErrLoadFailed)
	assert.Equal(t, "Failed to load profile", appErrors.FromError(err).Message)
}

func TestPortalViewsCancelled(t *testing.T) {
	portal, _ := newTestPortal(t)

	_, err := portal.Courses(cancelledContext(), 1, CoursesQuery{})

	assert.ErrorIs(t, err, appErrors.ErrCanceled)
}
