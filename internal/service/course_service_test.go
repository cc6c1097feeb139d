package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

func TestCourseServiceCreateAssignsNextID(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	course, err := svcs.courses.Create(ctx, CreateCourseRequest{
		Code: "BIO 110", Name: "Biology", Credits: 3, Instructor: "Dr. Lee", Schedule: "MWF 8:00 AM", Capacity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, course.ID)
	assert.Zero(t, course.Enrolled)

	require.NoError(t, svcs.courses.Delete(ctx, course.ID))
	_, err = svcs.courses.Get(ctx, course.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseServiceCreateValidation(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.courses.Create(context.Background(), CreateCourseRequest{Code: "X"})

	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseServiceEnrollUntilFull(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	course, err := svcs.courses.Create(ctx, CreateCourseRequest{
		Code: "BIO 110", Name: "Biology", Credits: 3, Instructor: "Dr. Lee", Schedule: "MWF 8:00 AM", Capacity: 2,
	})
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		enrolled, err := svcs.courses.Enroll(ctx, course.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, i, enrolled.Enrolled)
	}

	_, err = svcs.courses.Enroll(ctx, course.ID, 1)
	assert.ErrorIs(t, err, appErrors.ErrCourseFull)

	stored, err := svcs.courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Enrolled)
}

func TestCourseServiceDropNeverNegative(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	course, err := svcs.courses.Create(ctx, CreateCourseRequest{
		Code: "BIO 110", Name: "Biology", Credits: 3, Instructor: "Dr. Lee", Schedule: "MWF 8:00 AM", Capacity: 2,
	})
	require.NoError(t, err)

	dropped, err := svcs.courses.Drop(ctx, course.ID, 1)
	require.NoError(t, err)

	assert.Zero(t, dropped.Enrolled)
}

func TestCourseServiceAvailableExcludesFullCourses(t *testing.T) {
	svcs := newTestServices(t)

	available, err := svcs.courses.Available(context.Background())
	require.NoError(t, err)

	assert.Len(t, available, 5)
	for _, c := range available {
		assert.NotEqual(t, "CS 350", c.Code)
	}
}

func TestCourseServiceEnrollMissingCourse(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.courses.Enroll(context.Background(), 404, 1)

	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseServiceCancelledContext(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.courses.List(cancelledContext())

	assert.ErrorIs(t, err, appErrors.ErrCanceled)
}
