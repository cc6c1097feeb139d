package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/repository"
	"github.com/noah-isme/scholarhub-api/internal/seed"
	"github.com/noah-isme/scholarhub-api/internal/service"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/latency"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type handlerServices struct {
	students      *service.StudentService
	courses       *service.CourseService
	grades        *service.GradeService
	events        *service.EventService
	announcements *service.AnnouncementService
}

func newHandlerServices(t *testing.T) handlerServices {
	t.Helper()
	ds, err := seed.Default()
	require.NoError(t, err)
	store := repository.NewStore(ds, latency.None(), nil)
	validate := service.NewValidator()
	return handlerServices{
		students:      service.NewStudentService(store.Students, nil, validate, nil),
		courses:       service.NewCourseService(store.Courses, nil, validate, nil),
		grades:        service.NewGradeService(store.Grades, nil, validate, nil),
		events:        service.NewEventService(store.Events, nil, validate, nil),
		announcements: service.NewAnnouncementService(store.Announcements, nil, validate, nil),
	}
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withStudent(c *gin.Context, studentID int) {
	c.Set(middleware.ContextSessionKey, &models.SessionClaims{StudentID: studentID})
}

func withID(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}
