package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

type sessionOpener interface {
	Open(ctx context.Context, req models.SessionRequest) (*models.SessionResponse, error)
}

type sessionStudents interface {
	Get(ctx context.Context, id int) (*models.Student, error)
}

// SessionHandler issues session tokens.
type SessionHandler struct {
	sessions sessionOpener
	students sessionStudents
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions sessionOpener, students sessionStudents) *SessionHandler {
	return &SessionHandler{sessions: sessions, students: students}
}

// Open godoc
// @Summary Open a session for a student
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.SessionRequest true "Student to act as"
// @Success 201 {object} response.Envelope
// @Router /session [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req models.SessionRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.sessions.Open(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Current godoc
// @Summary Student the request acts as
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"authenticated": middleware.Authenticated(c)}
	response.JSON(c, http.StatusOK, student, nil, meta)
}
