package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeServiceGPAAndTranscript(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	gpa, err := svcs.grades.GPA(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 131.6/38, gpa, 1e-9)

	fall, err := svcs.grades.SemesterGPA(ctx, 1, "Fall 2025")
	require.NoError(t, err)
	assert.InDelta(t, 30.0/9, fall, 1e-9)

	terms, err := svcs.grades.Transcript(ctx, 1)
	require.NoError(t, err)
	require.Len(t, terms, 4)
	assert.Equal(t, "Spring 2026", terms[0].Semester)
	assert.Equal(t, "Fall 2024", terms[3].Semester)
	assert.Equal(t, 8, terms[0].Credits)
}

func TestGradeServiceUpdateKeepsOtherFields(t *testing.T) {
	svcs := newTestServices(t)

	updated, err := svcs.grades.Update(context.Background(), 9, UpdateGradeRequest{Grade: strPtr("B")})
	require.NoError(t, err)

	assert.Equal(t, "B", updated.Grade)
	assert.Equal(t, "PSY 101", updated.CourseCode)
	assert.Equal(t, 3, updated.Credits)
}
