package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/jobs"
	"github.com/noah-isme/scholarhub-api/pkg/storage"
)

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newExportServiceForTest(t *testing.T) (*ExportService, *recordingQueue) {
	t.Helper()
	svcs := newTestServices(t)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewExportService(ExportServiceParams{
		Students: svcs.students,
		Grades:   svcs.grades,
		Storage:  files,
		Signer:   storage.NewSignedURLSigner("secret", time.Hour),
		Metrics:  NewMetricsService(),
	})
	queue := &recordingQueue{}
	svc.AttachQueue(queue)
	return svc, queue
}

func TestExportServiceRequestQueuesJob(t *testing.T) {
	svc, queue := newExportServiceForTest(t)

	job, err := svc.Request(context.Background(), 1, ExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)

	assert.Equal(t, models.ExportStatusQueued, job.Status)
	assert.Equal(t, models.SemesterAll, job.Semester)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, TranscriptJobType, queue.jobs[0].Type)
	assert.Equal(t, job.ID, queue.jobs[0].Payload)
}

func TestExportServiceRequestValidation(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Request(context.Background(), 1, ExportRequest{Format: "docx"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Request(context.Background(), 99, ExportRequest{Format: models.ExportFormatPDF})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestExportServiceRequestQueueFailure(t *testing.T) {
	svc, queue := newExportServiceForTest(t)
	queue.err = errors.New("full")

	_, err := svc.Request(context.Background(), 1, ExportRequest{Format: models.ExportFormatCSV})

	assert.ErrorIs(t, err, appErrors.ErrInternal)
	svc.mu.RLock()
	assert.Empty(t, svc.jobs)
	svc.mu.RUnlock()
}

func TestExportServiceProcessAndDownloadCSV(t *testing.T) {
	svc, queue := newExportServiceForTest(t)
	ctx := context.Background()
	job, err := svc.Request(ctx, 1, ExportRequest{Format: models.ExportFormatCSV, Semester: "Fall 2025"})
	require.NoError(t, err)

	require.NoError(t, svc.Process(ctx, queue.jobs[0]))

	done, err := svc.Status(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, done.Status)
	require.NotNil(t, done.ResultURL)
	require.NotNil(t, done.ExpiresAt)
	assert.True(t, strings.HasPrefix(*done.ResultURL, "/api/v1/exports/download/"))

	token := strings.TrimPrefix(*done.ResultURL, "/api/v1/exports/download/")
	download, err := svc.Download(ctx, token)
	require.NoError(t, err)
	defer download.File.Close() //nolint:errcheck

	assert.Equal(t, "text/csv; charset=utf-8", download.ContentType)
	assert.True(t, strings.HasSuffix(download.Filename, ".csv"))

	records, err := csv.NewReader(download.File).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Semester", "Course Code", "Course Name", "Grade", "Credits", "Points"}, records[0])
	assert.Equal(t, []string{"Fall 2025", "CS 250", "Computer Architecture", "A-", "3", "3.70"}, records[1])
}

func TestExportServiceProcessXLSXAndPDF(t *testing.T) {
	svc, queue := newExportServiceForTest(t)
	ctx := context.Background()

	for _, format := range []models.ExportFormat{models.ExportFormatPDF, models.ExportFormatXLSX} {
		job, err := svc.Request(ctx, 1, ExportRequest{Format: format})
		require.NoError(t, err)
		require.NoError(t, svc.Process(ctx, queue.jobs[len(queue.jobs)-1]))

		done, err := svc.Status(ctx, 1, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExportStatusFinished, done.Status, format)

		token := (*done.ResultURL)[strings.LastIndex(*done.ResultURL, "/")+1:]
		download, err := svc.Download(ctx, token)
		require.NoError(t, err)
		body, err := io.ReadAll(download.File)
		require.NoError(t, download.File.Close())
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	}
}

func TestExportServiceStatusScopedToStudent(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	job, err := svc.Request(context.Background(), 1, ExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)

	_, err = svc.Status(context.Background(), 2, job.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Status(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestExportServiceFailMarksJob(t *testing.T) {
	svc, queue := newExportServiceForTest(t)
	job, err := svc.Request(context.Background(), 1, ExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)

	svc.Fail(queue.jobs[0], errors.New("disk full"))

	failed, err := svc.Status(context.Background(), 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFailed, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Equal(t, "disk full", *failed.ErrorMessage)
	assert.Nil(t, failed.ResultURL)
}

func TestExportServiceDownloadRejectsBadToken(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Download(context.Background(), "nope")

	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "fall_2025", sanitizeFilename("Fall 2025"))
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "a-b", sanitizeFilename("a/b"))
}
