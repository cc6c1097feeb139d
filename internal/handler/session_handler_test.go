package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/service"
)

func newSessionHandler(t *testing.T) (*SessionHandler, *service.SessionService) {
	t.Helper()
	students := newHandlerServices(t).students
	sessions := service.NewSessionService(students, service.SessionConfig{Secret: "handler-secret", TTL: time.Hour}, nil, nil)
	return NewSessionHandler(sessions, students), sessions
}

func TestSessionHandlerOpenAndCurrent(t *testing.T) {
	handler, sessions := newSessionHandler(t)

	c, w := newGinContext(http.MethodPost, "/session", []byte(`{"student_id":2}`))
	handler.Open(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var session models.SessionResponse
	decodeEnvelope(t, w, &session)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, 2, session.StudentID)

	c, w = newGinContext(http.MethodGet, "/session", nil)
	c.Request.Header.Set("Authorization", "Bearer "+session.Token)
	middleware.Session(sessions, false)(c)
	handler.Current(c)

	require.Equal(t, http.StatusOK, w.Code)
	var student models.Student
	env := decodeEnvelope(t, w, &student)
	assert.Equal(t, "Aisha Rahman", student.Name)
	assert.Equal(t, true, env.Meta["authenticated"])
}

func TestSessionHandlerCurrentFallsBackToDemoStudent(t *testing.T) {
	handler, sessions := newSessionHandler(t)

	c, w := newGinContext(http.MethodGet, "/session", nil)
	middleware.Session(sessions, false)(c)
	handler.Current(c)

	require.Equal(t, http.StatusOK, w.Code)
	var student models.Student
	env := decodeEnvelope(t, w, &student)
	assert.Equal(t, "John Smith", student.Name)
	assert.Equal(t, false, env.Meta["authenticated"])
}

func TestSessionHandlerOpenUnknownStudent(t *testing.T) {
	handler, _ := newSessionHandler(t)

	c, w := newGinContext(http.MethodPost, "/session", []byte(`{"student_id":42}`))
	handler.Open(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
