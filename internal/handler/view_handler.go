package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/dto"
	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/service"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

type dashboardViews interface {
	Dashboard(ctx context.Context, studentID int) (*dto.DashboardView, bool, error)
}

type portalViews interface {
	Courses(ctx context.Context, studentID int, query service.CoursesQuery) (*dto.CoursesView, error)
	Grades(ctx context.Context, studentID int, query service.GradesQuery) (*dto.GradesView, error)
	Calendar(ctx context.Context, query service.CalendarQuery) (*dto.CalendarView, error)
	Announcements(ctx context.Context, query service.AnnouncementsQuery) (*dto.AnnouncementsView, error)
	Profile(ctx context.Context, studentID int) (*dto.ProfileView, error)
	UpdateProfile(ctx context.Context, studentID int, req service.UpdateProfileRequest) (*dto.ProfileView, error)
}

// ViewHandler serves the composed portal pages. Failed loads carry the path to retry.
type ViewHandler struct {
	dashboard dashboardViews
	portal    portalViews
}

// NewViewHandler constructs the handler.
func NewViewHandler(dashboard dashboardViews, portal portalViews) *ViewHandler {
	return &ViewHandler{dashboard: dashboard, portal: portal}
}

// Dashboard godoc
// @Summary Dashboard of the current student
// @Tags Views
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /views/dashboard [get]
func (h *ViewHandler) Dashboard(c *gin.Context) {
	if h.dashboard == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	view, cacheHit, err := h.dashboard.Dashboard(c.Request.Context(), studentID)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, view, nil, middleware.ExtractMeta(c))
}

// Courses godoc
// @Summary Courses page
// @Tags Views
// @Produce json
// @Param search query string false "Matches code, name or instructor"
// @Param filter query string false "all, high-enrollment, morning or afternoon"
// @Success 200 {object} response.Envelope
// @Router /views/courses [get]
func (h *ViewHandler) Courses(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	var query service.CoursesQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := h.portal.Courses(c.Request.Context(), studentID, query)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Grades godoc
// @Summary Grades page
// @Tags Views
// @Produce json
// @Param semester query string false "Semester label, or all"
// @Success 200 {object} response.Envelope
// @Router /views/grades [get]
func (h *ViewHandler) Grades(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	var query service.GradesQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := h.portal.Grades(c.Request.Context(), studentID, query)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Calendar godoc
// @Summary Calendar page
// @Tags Views
// @Produce json
// @Param month query string false "Month anchor (YYYY-MM)"
// @Param offset query int false "Whole months to shift the anchor by"
// @Param today query bool false "Reset to the current month"
// @Param date query string false "Selected day (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /views/calendar [get]
func (h *ViewHandler) Calendar(c *gin.Context) {
	var query service.CalendarQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := h.portal.Calendar(c.Request.Context(), query)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Announcements godoc
// @Summary Announcements page
// @Tags Views
// @Produce json
// @Param search query string false "Matches title or content"
// @Param filter query string false "all, unread, high, medium or low"
// @Success 200 {object} response.Envelope
// @Router /views/announcements [get]
func (h *ViewHandler) Announcements(c *gin.Context) {
	var query service.AnnouncementsQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := h.portal.Announcements(c.Request.Context(), query)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Profile godoc
// @Summary Profile page
// @Tags Views
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /views/profile [get]
func (h *ViewHandler) Profile(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	view, err := h.portal.Profile(c.Request.Context(), studentID)
	if err != nil {
		response.Retryable(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// UpdateProfile godoc
// @Summary Edit the current student's profile
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Router /views/profile [put]
func (h *ViewHandler) UpdateProfile(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.portal.UpdateProfile(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, view, "Profile updated")
}

func bindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return false
	}
	return true
}
