package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/dto"
	"github.com/noah-isme/scholarhub-api/internal/models"
)

const dashboardLoadFailed = "Failed to load dashboard data"

type studentReader interface {
	Get(ctx context.Context, id int) (*models.Student, error)
}

type enrolledCourseLister interface {
	Enrolled(ctx context.Context, studentID int) ([]models.Course, error)
}

type recentAnnouncementLister interface {
	Recent(ctx context.Context, limit int) ([]models.Announcement, error)
	Unread(ctx context.Context) ([]models.Announcement, error)
}

type deadlineLister interface {
	UpcomingDeadlines(ctx context.Context, limit int) ([]models.Event, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL          time.Duration
	CourseLimit       int
	AnnouncementLimit int
	DeadlineLimit     int
}

// DashboardService composes the dashboard page.
type DashboardService struct {
	students      studentReader
	courses       enrolledCourseLister
	announcements recentAnnouncementLister
	events        deadlineLister
	cache         *CacheService
	logger        *zap.Logger
	now           func() time.Time
	cfg           DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students      studentReader
	Courses       enrolledCourseLister
	Announcements recentAnnouncementLister
	Events        deadlineLister
	Cache         *CacheService
	Logger        *zap.Logger
	Config        DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CourseLimit <= 0 {
		cfg.CourseLimit = 4
	}
	if cfg.AnnouncementLimit <= 0 {
		cfg.AnnouncementLimit = 3
	}
	if cfg.DeadlineLimit <= 0 {
		cfg.DeadlineLimit = 3
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:      params.Students,
		courses:       params.Courses,
		announcements: params.Announcements,
		events:        params.Events,
		cache:         params.Cache,
		logger:        logger,
		now:           time.Now,
		cfg:           cfg,
	}
}

// Dashboard returns the dashboard of studentID and reports whether it came from cache. All loads
// run concurrently; the first failure cancels the rest and fails the whole view.
func (s *DashboardService) Dashboard(ctx context.Context, studentID int) (*dto.DashboardView, bool, error) {
	cacheKey := DashboardCacheKey(studentID)
	if view, hit := s.tryCache(ctx, cacheKey); hit {
		return view, true, nil
	}
	generation := s.cache.DashboardGeneration()

	var (
		student       *models.Student
		courses       []models.Course
		announcements []models.Announcement
		unread        []models.Announcement
		deadlines     []models.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		student, err = s.students.Get(gctx, studentID)
		return err
	})
	g.Go(func() (err error) {
		courses, err = s.courses.Enrolled(gctx, studentID)
		return err
	})
	g.Go(func() (err error) {
		announcements, err = s.announcements.Recent(gctx, DefaultRecentLimit)
		return err
	})
	g.Go(func() (err error) {
		unread, err = s.announcements.Unread(gctx)
		return err
	})
	g.Go(func() (err error) {
		deadlines, err = s.events.UpcomingDeadlines(gctx, s.cfg.DeadlineLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard load failed", zap.Int("student_id", studentID), zap.Error(err))
		return nil, false, loadFailed(err, dashboardLoadFailed)
	}

	view := s.compose(student, courses, announcements, len(unread), deadlines)
	s.persistCache(ctx, cacheKey, view, generation)
	return view, false, nil
}

func (s *DashboardService) compose(student *models.Student, courses []models.Course, announcements []models.Announcement, unreadCount int, deadlines []models.Event) *dto.DashboardView {
	view := &dto.DashboardView{
		Student: dto.StudentSummary{
			ID:        student.ID,
			Name:      student.Name,
			Major:     student.Major,
			Year:      student.Year,
			YearLabel: yearLabel(student.Year),
		},
		Stats: []dto.StatCard{
			{Key: "gpa", Title: "Current GPA", Value: academics.FormatGPA(student.GPA), Icon: "Award", Color: "success"},
			{Key: "credits", Title: "Total Credits", Value: strconv.Itoa(student.Credits), Icon: "BookOpen", Color: "primary"},
			{Key: "courses", Title: "Active Courses", Value: strconv.Itoa(len(courses)), Icon: "Calendar", Color: "info"},
			{Key: "unread", Title: "Unread Announcements", Value: strconv.Itoa(unreadCount), Icon: "Bell", Color: "accent"},
		},
		Courses:       courseCards(takeFirst(courses, s.cfg.CourseLimit)),
		CourseCount:   len(courses),
		Announcements: announcementCards(takeFirst(announcements, s.cfg.AnnouncementLimit)),
		Deadlines:     eventItems(deadlines),
		GeneratedAt:   s.now().UTC(),
	}
	if len(courses) == 0 {
		view.Empty = &dto.EmptyState{
			Icon:        "BookOpen",
			Title:       "No courses enrolled",
			Description: "You haven't enrolled in any courses yet.",
			ActionLabel: "Browse Courses",
			ActionPath:  "/courses",
		}
	}
	return view
}

func (s *DashboardService) tryCache(ctx context.Context, key string) (*dto.DashboardView, bool) {
	if !s.cache.Enabled() {
		return nil, false
	}
	var cached dto.DashboardView
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return &cached, true
}

// persistCache stores a view loaded under generation. A write that invalidated dashboards while
// the view was loading makes it stale, so it is skipped, or removed again when the invalidation
// raced the Set.
func (s *DashboardService) persistCache(ctx context.Context, key string, value *dto.DashboardView, generation uint64) {
	if !s.cache.Enabled() || s.cache.DashboardGeneration() != generation {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.cache.DashboardGeneration() != generation {
		_ = s.cache.Invalidate(context.WithoutCancel(ctx), key)
	}
}
