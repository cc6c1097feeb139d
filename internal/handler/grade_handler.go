package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// GPAResponse reports a GPA both raw and formatted.
type GPAResponse struct {
	Semester  string  `json:"semester"`
	GPA       float64 `json:"gpa"`
	Formatted string  `json:"formatted"`
}

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Param semester query string false "Semester label, or all"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	semester := strings.TrimSpace(c.Query("semester"))
	var (
		grades []models.Grade
		err    error
	)
	if semester == "" || semester == models.SemesterAll {
		grades, err = h.grades.List(c.Request.Context())
	} else {
		grades, err = h.grades.BySemester(c.Request.Context(), semester)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, grades)
}

// Semesters godoc
// @Summary List semesters with recorded grades, most recent first
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/semesters [get]
func (h *GradeHandler) Semesters(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	grades, err := h.grades.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academics.Semesters(grades), nil)
}

// GPA godoc
// @Summary GPA of the current student
// @Tags Grades
// @Produce json
// @Param semester query string false "Restrict to one semester"
// @Success 200 {object} response.Envelope
// @Router /grades/gpa [get]
func (h *GradeHandler) GPA(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	semester := strings.TrimSpace(c.Query("semester"))
	var (
		gpa float64
		err error
	)
	if semester == "" || semester == models.SemesterAll {
		semester = models.SemesterAll
		gpa, err = h.grades.GPA(c.Request.Context(), studentID)
	} else {
		gpa, err = h.grades.SemesterGPA(c.Request.Context(), studentID, semester)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, GPAResponse{Semester: semester, GPA: gpa, Formatted: academics.FormatGPA(gpa)}, nil)
}

// Transcript godoc
// @Summary Transcript of the current student grouped by semester
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/transcript [get]
func (h *GradeHandler) Transcript(c *gin.Context) {
	studentID, ok := currentStudent(c)
	if !ok {
		return
	}
	terms, err := h.grades.Transcript(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}

// Get godoc
// @Summary Get grade detail
// @Tags Grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	grade, err := h.grades.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Create godoc
// @Summary Record grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.CreateGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.CreateGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// Update godoc
// @Summary Update grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path int true "Grade ID"
// @Param payload body service.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Delete godoc
// @Summary Delete grade
// @Tags Grades
// @Param id path int true "Grade ID"
// @Success 204
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.grades.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
