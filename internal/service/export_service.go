package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/export"
	"github.com/noah-isme/scholarhub-api/pkg/jobs"
	"github.com/noah-isme/scholarhub-api/pkg/storage"
)

// TranscriptJobType labels transcript export jobs on the queue.
const TranscriptJobType = "transcript_export"

// ExportRequest asks for a transcript document.
type ExportRequest struct {
	Format   models.ExportFormat `json:"format" validate:"required,oneof=csv pdf xlsx"`
	Semester string              `json:"semester"`
}

// ExportDownload is an open stored export ready to stream.
type ExportDownload struct {
	File        io.ReadSeekCloser
	Filename    string
	ContentType string
	Size        int64
	ModTime     time.Time
}

type transcriptStudents interface {
	Profile(ctx context.Context, studentID int) (*models.Student, error)
}

type transcriptGrades interface {
	ForStudent(ctx context.Context, studentID int) ([]models.Grade, error)
}

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (io.ReadSeekCloser, os.FileInfo, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	APIPrefix string
}

// ExportServiceParams groups the export service dependencies.
type ExportServiceParams struct {
	Students  transcriptStudents
	Grades    transcriptGrades
	Storage   fileStorage
	Signer    *storage.SignedURLSigner
	Renderers []export.Renderer
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    ExportServiceConfig
}

// ExportService tracks transcript export jobs and renders them on the worker queue.
type ExportService struct {
	students  transcriptStudents
	grades    transcriptGrades
	storage   fileStorage
	signer    *storage.SignedURLSigner
	renderers map[models.ExportFormat]export.Renderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportServiceConfig
	now       func() time.Time

	queue jobEnqueuer

	mu   sync.RWMutex
	jobs map[string]*models.ExportJob
}

// NewExportService constructs an ExportService. Without explicit renderers CSV, PDF and XLSX are
// registered.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = NewValidator()
	}
	cfg := params.Config
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	renderers := params.Renderers
	if len(renderers) == 0 {
		renderers = []export.Renderer{export.NewCSVExporter(), export.NewPDFExporter(), export.NewXLSXExporter("")}
	}
	byFormat := make(map[models.ExportFormat]export.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[models.ExportFormat(r.Extension())] = r
	}
	return &ExportService{
		students:  params.Students,
		grades:    params.Grades,
		storage:   params.Storage,
		signer:    params.Signer,
		renderers: byFormat,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		jobs:      make(map[string]*models.ExportJob),
	}
}

// AttachQueue sets the queue that runs Process. Jobs requested before a queue is attached fail.
func (s *ExportService) AttachQueue(q jobEnqueuer) {
	s.mu.Lock()
	s.queue = q
	s.mu.Unlock()
}

// Request registers a queued transcript export for the student.
func (s *ExportService) Request(ctx context.Context, studentID int, req ExportRequest) (*models.ExportJob, error) {
	req.Semester = strings.TrimSpace(req.Semester)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid export request")
	}
	if _, ok := s.renderers[req.Format]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("export format %s is not available", req.Format))
	}
	if _, err := s.students.Profile(ctx, studentID); err != nil {
		return nil, err
	}
	if req.Semester == "" {
		req.Semester = models.SemesterAll
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Format:    req.Format,
		Semester:  req.Semester,
		Status:    models.ExportStatusQueued,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	queue := s.queue
	s.jobs[job.ID] = job
	snapshot := *job
	s.mu.Unlock()

	if queue == nil {
		s.forget(job.ID)
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue unavailable")
	}
	if err := queue.Enqueue(jobs.Job{ID: job.ID, Type: TranscriptJobType, Payload: job.ID}); err != nil {
		s.forget(job.ID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	s.logger.Info("transcript export queued", zap.String("job_id", job.ID), zap.Int("student_id", studentID), zap.String("format", string(job.Format)))
	return &snapshot, nil
}

// Status returns the job when it belongs to the student.
func (s *ExportService) Status(ctx context.Context, studentID int, id string) (*models.ExportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok || job.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	snapshot := *job
	return &snapshot, nil
}

// Process renders the transcript named by the queued job. It is the queue handler.
func (s *ExportService) Process(ctx context.Context, queued jobs.Job) error {
	id, _ := queued.Payload.(string)
	job, ok := s.transition(id, models.ExportStatusProcessing)
	if !ok {
		s.logger.Warn("dropping unknown export job", zap.String("job_id", queued.ID))
		return nil
	}

	dataset, err := s.buildDataset(ctx, job)
	if err != nil {
		return err
	}
	renderer := s.renderers[job.Format]
	payload, err := renderer.Render(dataset)
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Format, err)
	}

	relPath, err := s.storage.Save(s.buildFilename(job, renderer.Extension()), payload)
	if err != nil {
		return err
	}
	token, ticket, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return err
	}
	url := strings.TrimRight(s.cfg.APIPrefix, "/") + "/exports/download/" + token
	finished := s.now().UTC()

	s.mu.Lock()
	if stored, ok := s.jobs[job.ID]; ok {
		stored.Status = models.ExportStatusFinished
		stored.RelativePath = relPath
		stored.ResultURL = &url
		stored.ErrorMessage = nil
		stored.FinishedAt = &finished
		stored.ExpiresAt = &ticket.ExpiresAt
	}
	s.mu.Unlock()

	s.metrics.RecordExportJob(job.Format, models.ExportStatusFinished)
	s.logger.Info("transcript export finished", zap.String("job_id", job.ID), zap.String("path", relPath), zap.Int("bytes", len(payload)))
	return nil
}

// Fail marks a job whose retries ran out. It is the queue exhaustion hook.
func (s *ExportService) Fail(queued jobs.Job, cause error) {
	id, _ := queued.Payload.(string)
	message := "export failed"
	if cause != nil {
		message = cause.Error()
	}
	finished := s.now().UTC()

	s.mu.Lock()
	job, ok := s.jobs[id]
	if ok {
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = &message
		job.FinishedAt = &finished
	}
	s.mu.Unlock()

	if ok {
		s.metrics.RecordExportJob(job.Format, models.ExportStatusFailed)
	}
}

// Download resolves a signed token into an open file.
func (s *ExportService) Download(ctx context.Context, token string) (*ExportDownload, error) {
	ticket, err := s.signer.Parse(token)
	switch {
	case errors.Is(err, storage.ErrTokenExpired):
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "download link expired")
	case err != nil:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[ticket.JobID]
	var format models.ExportFormat
	if ok {
		format = job.Format
	}
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}

	file, info, err := s.storage.Open(ticket.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file not found")
	}
	contentType := "application/octet-stream"
	if r, ok := s.renderers[format]; ok {
		contentType = r.ContentType()
	}
	return &ExportDownload{
		File:        file,
		Filename:    info.Name(),
		ContentType: contentType,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// Cleanup removes stored files older than the signer TTL and forgets their jobs.
func (s *ExportService) Cleanup(ctx context.Context) (int, error) {
	ttl := s.signer.TTL()
	deleted, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	for id, job := range s.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	if len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.Int("files", len(deleted)))
	}
	return len(deleted), nil
}

func (s *ExportService) transition(id string, status models.ExportStatus) (models.ExportJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return models.ExportJob{}, false
	}
	job.Status = status
	return *job, true
}

func (s *ExportService) forget(id string) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}

func (s *ExportService) buildDataset(ctx context.Context, job models.ExportJob) (export.Dataset, error) {
	student, err := s.students.Profile(ctx, job.StudentID)
	if err != nil {
		return export.Dataset{}, err
	}
	grades, err := s.grades.ForStudent(ctx, job.StudentID)
	if err != nil {
		return export.Dataset{}, err
	}
	selected := academics.FilterBySemester(grades, job.Semester)
	terms := BuildTranscript(selected)

	semesterLabel := "All semesters"
	if job.Semester != models.SemesterAll {
		semesterLabel = job.Semester
	}
	dataset := export.Dataset{
		Title: "Academic Transcript",
		Notes: []string{
			fmt.Sprintf("Student: %s (%s)", student.Name, student.StudentNumber),
			fmt.Sprintf("Major: %s", student.Major),
			fmt.Sprintf("Semester: %s", semesterLabel),
			fmt.Sprintf("GPA: %s", academics.FormatGPA(academics.ComputeGPA(selected))),
			fmt.Sprintf("Total Credits: %d", academics.TotalCredits(selected)),
		},
		Headers: []string{"Semester", "Course Code", "Course Name", "Grade", "Credits", "Points"},
		Rows:    make([][]string, 0, len(selected)),
	}
	for _, term := range terms {
		termGrades := append([]models.Grade(nil), term.Grades...)
		sort.SliceStable(termGrades, func(i, j int) bool { return termGrades[i].CourseCode < termGrades[j].CourseCode })
		for _, g := range termGrades {
			dataset.Rows = append(dataset.Rows, []string{
				term.Semester,
				g.CourseCode,
				g.CourseName,
				g.Grade,
				strconv.Itoa(g.Credits),
				strconv.FormatFloat(g.Points, 'f', 2, 64),
			})
		}
	}
	return dataset, nil
}

func (s *ExportService) buildFilename(job models.ExportJob, ext string) string {
	return fmt.Sprintf("transcripts/%d/%s_%s.%s", job.StudentID, sanitizeFilename(job.Semester), job.ID, ext)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
