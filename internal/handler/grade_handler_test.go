package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

func TestGradeHandlerListBySemester(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodGet, "/grades?semester=Fall%202025", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var grades []models.Grade
	decodeEnvelope(t, w, &grades)
	require.Len(t, grades, 3)
	for _, g := range grades {
		assert.Equal(t, "Fall 2025", g.Semester)
	}

	c, w = newGinContext(http.MethodGet, "/grades?semester=all", nil)
	handler.List(c)
	decodeEnvelope(t, w, &grades)
	assert.Len(t, grades, 12)
}

func TestGradeHandlerGPA(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodGet, "/grades/gpa", nil)
	withStudent(c, 1)
	handler.GPA(c)

	require.Equal(t, http.StatusOK, w.Code)
	var gpa GPAResponse
	decodeEnvelope(t, w, &gpa)
	assert.Equal(t, models.SemesterAll, gpa.Semester)
	assert.Equal(t, "3.46", gpa.Formatted)
	assert.InDelta(t, 131.6/38, gpa.GPA, 1e-9)

	c, w = newGinContext(http.MethodGet, "/grades/gpa?semester=Fall%202025", nil)
	withStudent(c, 1)
	handler.GPA(c)

	require.Equal(t, http.StatusOK, w.Code)
	decodeEnvelope(t, w, &gpa)
	assert.Equal(t, "Fall 2025", gpa.Semester)
	assert.Equal(t, "3.33", gpa.Formatted)
}

func TestGradeHandlerSemestersMostRecentFirst(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodGet, "/grades/semesters", nil)
	withStudent(c, 1)
	handler.Semesters(c)

	require.Equal(t, http.StatusOK, w.Code)
	var semesters []string
	decodeEnvelope(t, w, &semesters)
	assert.Equal(t, []string{"Spring 2026", "Fall 2025", "Spring 2025", "Fall 2024"}, semesters)
}

func TestGradeHandlerTranscriptRequiresStudent(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodGet, "/grades/transcript", nil)
	handler.Transcript(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGradeHandlerTranscript(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodGet, "/grades/transcript", nil)
	withStudent(c, 1)
	handler.Transcript(c)

	require.Equal(t, http.StatusOK, w.Code)
	var terms []models.TranscriptTerm
	decodeEnvelope(t, w, &terms)
	require.Len(t, terms, 4)
	total := 0
	for _, term := range terms {
		total += len(term.Grades)
	}
	assert.Equal(t, 12, total)
}

func TestGradeHandlerUpdateUnknownGrade(t *testing.T) {
	handler := NewGradeHandler(newHandlerServices(t).grades)

	c, w := newGinContext(http.MethodPut, "/grades/404", []byte(`{"grade":"A"}`))
	withID(c, "404")
	handler.Update(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
