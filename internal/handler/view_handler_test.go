package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/dto"
	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/service"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

type dashboardViewsMock struct {
	view     *dto.DashboardView
	cacheHit bool
	err      error
	student  int
}

func (m *dashboardViewsMock) Dashboard(ctx context.Context, studentID int) (*dto.DashboardView, bool, error) {
	m.student = studentID
	return m.view, m.cacheHit, m.err
}

type portalViewsMock struct {
	err           error
	coursesQuery  service.CoursesQuery
	calendarQuery service.CalendarQuery
	profileUpdate service.UpdateProfileRequest
}

func (m *portalViewsMock) Courses(ctx context.Context, studentID int, query service.CoursesQuery) (*dto.CoursesView, error) {
	m.coursesQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CoursesView{Search: query.Search, Filter: query.Filter}, nil
}

func (m *portalViewsMock) Grades(ctx context.Context, studentID int, query service.GradesQuery) (*dto.GradesView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GradesView{Semester: query.Semester}, nil
}

func (m *portalViewsMock) Calendar(ctx context.Context, query service.CalendarQuery) (*dto.CalendarView, error) {
	m.calendarQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CalendarView{SelectedDate: query.Date}, nil
}

func (m *portalViewsMock) Announcements(ctx context.Context, query service.AnnouncementsQuery) (*dto.AnnouncementsView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.AnnouncementsView{Search: query.Search, Filter: query.Filter}, nil
}

func (m *portalViewsMock) Profile(ctx context.Context, studentID int) (*dto.ProfileView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ProfileView{Initials: "JS"}, nil
}

func (m *portalViewsMock) UpdateProfile(ctx context.Context, studentID int, req service.UpdateProfileRequest) (*dto.ProfileView, error) {
	m.profileUpdate = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ProfileView{Initials: "JS"}, nil
}

func TestViewHandlerDashboardReportsCacheHit(t *testing.T) {
	dashboard := &dashboardViewsMock{view: &dto.DashboardView{CourseCount: 6}, cacheHit: true}
	handler := NewViewHandler(dashboard, &portalViewsMock{})

	c, w := newGinContext(http.MethodGet, "/views/dashboard", nil)
	withStudent(c, 2)
	middleware.WithResponseMeta()(c)
	handler.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	var view dto.DashboardView
	env := decodeEnvelope(t, w, &view)
	assert.Equal(t, 6, view.CourseCount)
	assert.Equal(t, 2, dashboard.student)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Contains(t, env.Meta, "processing_time_ms")
	assert.NotContains(t, env.Meta, "started_at")
}

func TestViewHandlerDashboardFailureIsRetryable(t *testing.T) {
	dashboard := &dashboardViewsMock{err: appErrors.Clone(appErrors.ErrLoadFailed, "Failed to load dashboard data")}
	handler := NewViewHandler(dashboard, &portalViewsMock{})

	c, w := newGinContext(http.MethodGet, "/views/dashboard", nil)
	withStudent(c, 1)
	handler.Dashboard(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Equal(t, "LOAD_FAILED", env.Error.Code)
	assert.Equal(t, "Failed to load dashboard data", env.Error.Message)
	assert.Equal(t, "/views/dashboard", env.Meta["retry"])
}

func TestViewHandlerCoursesBindsQuery(t *testing.T) {
	portal := &portalViewsMock{}
	handler := NewViewHandler(&dashboardViewsMock{}, portal)

	c, w := newGinContext(http.MethodGet, "/views/courses?search=dr.%20robert&filter=morning", nil)
	withStudent(c, 1)
	handler.Courses(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.CoursesQuery{Search: "dr. robert", Filter: "morning"}, portal.coursesQuery)
}

func TestViewHandlerCalendarBindsQuery(t *testing.T) {
	portal := &portalViewsMock{}
	handler := NewViewHandler(&dashboardViewsMock{}, portal)

	c, w := newGinContext(http.MethodGet, "/views/calendar?month=2026-10&offset=-1&date=2026-09-02", nil)
	handler.Calendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.CalendarQuery{Month: "2026-10", Offset: -1, Date: "2026-09-02"}, portal.calendarQuery)

	c, w = newGinContext(http.MethodGet, "/views/calendar?offset=later", nil)
	handler.Calendar(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewHandlerFailuresCarryRetryPath(t *testing.T) {
	portal := &portalViewsMock{err: appErrors.Clone(appErrors.ErrLoadFailed, "Failed to load announcements")}
	handler := NewViewHandler(&dashboardViewsMock{}, portal)

	c, w := newGinContext(http.MethodGet, "/views/announcements?filter=unread", nil)
	handler.Announcements(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Equal(t, "Failed to load announcements", env.Error.Message)
	assert.Equal(t, "/views/announcements?filter=unread", env.Meta["retry"])
}

func TestViewHandlerProfileRequiresStudent(t *testing.T) {
	handler := NewViewHandler(&dashboardViewsMock{}, &portalViewsMock{})

	c, w := newGinContext(http.MethodGet, "/views/profile", nil)
	handler.Profile(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewHandlerUpdateProfileNotice(t *testing.T) {
	portal := &portalViewsMock{}
	handler := NewViewHandler(&dashboardViewsMock{}, portal)

	c, w := newGinContext(http.MethodPut, "/views/profile", []byte(`{"phone":"+1 555 0100"}`))
	withStudent(c, 1)
	handler.UpdateProfile(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Equal(t, "Profile updated", env.Meta["notice"])
	require.NotNil(t, portal.profileUpdate.Phone)
	assert.Equal(t, "+1 555 0100", *portal.profileUpdate.Phone)
	assert.Nil(t, portal.profileUpdate.Name)
}
