package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// CourseHandler exposes course catalogue and enrollment endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, courses)
}

// Enrolled godoc
// @Summary List the current student's courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/enrolled [get]
func (h *CourseHandler) Enrolled(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	courses, err := h.courses.Enrolled(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, courses)
}

// Available godoc
// @Summary List courses with free seats
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/available [get]
func (h *CourseHandler) Available(c *gin.Context) {
	courses, err := h.courses.Available(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, courses)
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Enroll godoc
// @Summary Enroll the current student in a course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.EnrollmentRequest false "Student override"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	studentID, ok := enrollmentStudent(c)
	if !ok {
		return
	}
	course, err := h.courses.Enroll(c.Request.Context(), id, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, course, fmt.Sprintf("Enrolled in %s", course.Code))
}

// Drop godoc
// @Summary Drop a course for the current student
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/drop [post]
func (h *CourseHandler) Drop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	studentID, ok := enrollmentStudent(c)
	if !ok {
		return
	}
	course, err := h.courses.Drop(c.Request.Context(), id, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, course, fmt.Sprintf("Dropped %s", course.Code))
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// enrollmentStudent reads an optional student_id body and falls back to the session student.
func enrollmentStudent(c *gin.Context) (int, bool) {
	if c.Request.ContentLength > 0 {
		var req service.EnrollmentRequest
		if !bindJSON(c, &req) {
			return 0, false
		}
		if req.StudentID > 0 {
			return req.StudentID, true
		}
	}
	return currentStudent(c)
}
