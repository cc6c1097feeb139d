package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

func TestStudentServiceCreateDefaults(t *testing.T) {
	svcs := newTestServices(t)
	svcs.students.now = func() time.Time { return referenceNow }

	created, err := svcs.students.Create(context.Background(), CreateStudentRequest{
		StudentNumber: "STU-2026-0001", Name: "Lee Park", Email: "lee@university.edu", Major: "Physics", Year: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, created.ID)
	assert.Equal(t, models.StudentStatusActive, created.Status)
	assert.Equal(t, "2026-10-18", created.EnrollmentDate)
}

func TestStudentServiceProfile(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	profile, err := svcs.students.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", profile.Name)

	_, err = svcs.students.Profile(ctx, 99)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "student profile not found", appErrors.FromError(err).Message)
}

func TestStudentServiceUpdateProfile(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	updated, err := svcs.students.UpdateProfile(ctx, 1, UpdateProfileRequest{Phone: strPtr(" (555) 000-1111 ")})
	require.NoError(t, err)
	assert.Equal(t, "(555) 000-1111", updated.Phone)
	assert.Equal(t, "John Smith", updated.Name)

	_, err = svcs.students.UpdateProfile(ctx, 1, UpdateProfileRequest{Name: strPtr("   ")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svcs.students.UpdateProfile(ctx, 1, UpdateProfileRequest{Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
