package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/handler"
	"github.com/noah-isme/scholarhub-api/internal/repository"
	"github.com/noah-isme/scholarhub-api/internal/seed"
	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/latency"
	"github.com/noah-isme/scholarhub-api/pkg/storage"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func newTestEngine(t *testing.T, requireSession bool) (*gin.Engine, *service.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds, err := seed.Default()
	require.NoError(t, err)
	metrics := service.NewMetricsService()
	store := repository.NewStore(ds, latency.None(), metrics)
	validate := service.NewValidator()

	students := service.NewStudentService(store.Students, nil, validate, nil)
	courses := service.NewCourseService(store.Courses, nil, validate, nil)
	grades := service.NewGradeService(store.Grades, nil, validate, nil)
	events := service.NewEventService(store.Events, nil, validate, nil)
	announcements := service.NewAnnouncementService(store.Announcements, nil, validate, nil)
	sessions := service.NewSessionService(students, service.SessionConfig{Secret: "router-secret", TTL: time.Hour}, validate, nil)

	exportStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	exports := service.NewExportService(service.ExportServiceParams{
		Students: students,
		Grades:   grades,
		Storage:  exportStorage,
		Signer:   storage.NewSignedURLSigner("export-secret", time.Hour),
		Metrics:  metrics,
	})

	engine := New(Options{RequireSession: requireSession, EnableMetrics: true}, nil, sessions, metrics, Handlers{
		Students:      handler.NewStudentHandler(students),
		Courses:       handler.NewCourseHandler(courses),
		Grades:        handler.NewGradeHandler(grades),
		Events:        handler.NewEventHandler(events),
		Announcements: handler.NewAnnouncementHandler(announcements),
		Views: handler.NewViewHandler(
			service.NewDashboardService(service.DashboardServiceParams{Students: students, Courses: courses, Announcements: announcements, Events: events}),
			service.NewPortalService(service.PortalServiceParams{Courses: courses, Grades: grades, Events: events, Announcements: announcements, Profiles: students}),
		),
		Navigation: handler.NewNavigationHandler(),
		Sessions:   handler.NewSessionHandler(sessions, students),
		Exports:    handler.NewExportHandler(exports),
		Metrics:    handler.NewMetricsHandler(metrics, nil),
	})
	return engine, sessions
}

func perform(engine http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRouterHealthAndMetrics(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := perform(engine, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	perform(engine, http.MethodGet, "/api/v1/courses/1", "", "")
	w = perform(engine, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/api/v1/courses/:id"`)
}

func TestRouterDashboardUsesDemoStudent(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := perform(engine, http.MethodGet, "/api/v1/views/dashboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Contains(t, string(env.Data), `"name":"John Smith"`)
	assert.Equal(t, false, env.Meta["cache_hit"])
	assert.Contains(t, env.Meta, "processing_time_ms")
}

func TestRouterSessionSelectsStudent(t *testing.T) {
	engine, _ := newTestEngine(t, true)

	w := perform(engine, http.MethodGet, "/api/v1/views/profile", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(engine, http.MethodPost, "/api/v1/session", `{"student_id":2}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &session))

	w = perform(engine, http.MethodGet, "/api/v1/views/profile", "", session.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"initials":"AR"`)
}

func TestRouterEnrollFullCourse(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := perform(engine, http.MethodPost, "/api/v1/courses/4/enroll", "", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "COURSE_FULL", decode(t, w).Error.Code)

	w = perform(engine, http.MethodGet, "/api/v1/courses/enrolled", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterStaticSegmentsWinOverIDs(t *testing.T) {
	engine, _ := newTestEngine(t, false)

	w := perform(engine, http.MethodGet, "/api/v1/events/upcoming?limit=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = perform(engine, http.MethodPost, "/api/v1/announcements/read-all", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All announcements marked as read", decode(t, w).Meta["notice"])

	w = perform(engine, http.MethodGet, "/api/v1/exports/download/not-a-token", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterNavigationWithoutSession(t *testing.T) {
	engine, _ := newTestEngine(t, true)

	w := perform(engine, http.MethodGet, "/api/v1/navigation?path=/calendar", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"title":"Academic Calendar"`))
}
