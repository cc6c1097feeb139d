package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/repository"
	"github.com/noah-isme/scholarhub-api/internal/seed"
	"github.com/noah-isme/scholarhub-api/pkg/latency"
)

var referenceNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	ds, err := seed.Default()
	require.NoError(t, err)
	return repository.NewStore(ds, latency.None(), nil)
}

type testServices struct {
	store         *repository.Store
	students      *StudentService
	courses       *CourseService
	grades        *GradeService
	events        *EventService
	announcements *AnnouncementService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	store := newTestStore(t)
	validate := NewValidator()
	return testServices{
		store:         store,
		students:      NewStudentService(store.Students, nil, validate, nil),
		courses:       NewCourseService(store.Courses, nil, validate, nil),
		grades:        NewGradeService(store.Grades, nil, validate, nil),
		events:        NewEventService(store.Events, nil, validate, nil),
		announcements: NewAnnouncementService(store.Announcements, nil, validate, nil),
	}
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
