package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

// DefaultRecentLimit is the number of announcements Recent returns without an explicit limit.
const DefaultRecentLimit = 5

// CreateAnnouncementRequest holds payload for publishing announcements.
type CreateAnnouncementRequest struct {
	Title    string                      `json:"title" validate:"required,max=200"`
	Content  string                      `json:"content" validate:"required"`
	Author   string                      `json:"author" validate:"required"`
	Category string                      `json:"category" validate:"required"`
	Priority models.AnnouncementPriority `json:"priority" validate:"required,priority"`
}

// UpdateAnnouncementRequest is a partial update; nil fields keep their stored value.
type UpdateAnnouncementRequest struct {
	Title    *string                      `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string                      `json:"content" validate:"omitempty,min=1"`
	Author   *string                      `json:"author" validate:"omitempty,min=1"`
	Category *string                      `json:"category" validate:"omitempty,min=1"`
	Priority *models.AnnouncementPriority `json:"priority" validate:"omitempty,priority"`
	Read     *bool                        `json:"read"`
}

// AnnouncementService handles announcement feed use-cases.
type AnnouncementService struct {
	store     recordStore[models.Announcement]
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(store recordStore[models.Announcement], cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{store: store, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	items, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "announcement", "list announcements")
	}
	sortNewestFirst(items)
	return items, nil
}

// Get returns a single announcement.
func (s *AnnouncementService) Get(ctx context.Context, id int) (*models.Announcement, error) {
	item, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, "announcement", "load announcement")
	}
	return &item, nil
}

// Recent returns the newest limit announcements.
func (s *AnnouncementService) Recent(ctx context.Context, limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return takeFirst(items, limit), nil
}

// Unread returns unread announcements, newest first.
func (s *AnnouncementService) Unread(ctx context.Context) ([]models.Announcement, error) {
	return s.filter(ctx, "list unread announcements", func(a models.Announcement) bool { return !a.Read })
}

// ByPriority returns announcements of one priority, newest first.
func (s *AnnouncementService) ByPriority(ctx context.Context, priority models.AnnouncementPriority) ([]models.Announcement, error) {
	if !priority.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown priority")
	}
	return s.filter(ctx, "list announcements by priority", func(a models.Announcement) bool { return a.Priority == priority })
}

// ByCategory returns announcements of one category, newest first. Matching ignores case.
func (s *AnnouncementService) ByCategory(ctx context.Context, category string) ([]models.Announcement, error) {
	category = strings.TrimSpace(category)
	return s.filter(ctx, "list announcements by category", func(a models.Announcement) bool {
		return strings.EqualFold(a.Category, category)
	})
}

// MarkRead flags one announcement as read, leaving every other record untouched.
func (s *AnnouncementService) MarkRead(ctx context.Context, id int) (*models.Announcement, error) {
	item, err := s.store.Update(ctx, id, func(a *models.Announcement) error {
		a.Read = true
		return nil
	})
	if err != nil {
		return nil, storeError(err, "announcement", "mark announcement read")
	}
	s.cache.InvalidateDashboards(ctx)
	return &item, nil
}

// MarkAllRead flags every announcement as read.
func (s *AnnouncementService) MarkAllRead(ctx context.Context) ([]models.Announcement, error) {
	items, err := s.store.UpdateAll(ctx, func(a *models.Announcement) { a.Read = true })
	if err != nil {
		return nil, storeError(err, "announcement", "mark announcements read")
	}
	sortNewestFirst(items)
	s.cache.InvalidateDashboards(ctx)
	return items, nil
}

// Create publishes an unread announcement dated now.
func (s *AnnouncementService) Create(ctx context.Context, req CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid announcement payload")
	}
	created, err := s.store.Insert(ctx, models.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Priority: req.Priority,
		Date:     s.now().UTC(),
		Read:     false,
	})
	if err != nil {
		return nil, storeError(err, "announcement", "create announcement")
	}
	s.logger.Info("announcement published", zap.Int("announcement_id", created.ID), zap.String("priority", string(created.Priority)))
	s.cache.InvalidateDashboards(ctx)
	return &created, nil
}

// Update merges the provided fields into the stored announcement.
func (s *AnnouncementService) Update(ctx context.Context, id int, req UpdateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid announcement payload")
	}
	updated, err := s.store.Update(ctx, id, func(a *models.Announcement) error {
		setString(&a.Title, req.Title)
		setString(&a.Content, req.Content)
		setString(&a.Author, req.Author)
		setString(&a.Category, req.Category)
		if req.Priority != nil {
			a.Priority = *req.Priority
		}
		if req.Read != nil {
			a.Read = *req.Read
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "announcement", "update announcement")
	}
	s.cache.InvalidateDashboards(ctx)
	return &updated, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "announcement", "delete announcement")
	}
	s.cache.InvalidateDashboards(ctx)
	return nil
}

func (s *AnnouncementService) filter(ctx context.Context, action string, keep func(models.Announcement) bool) ([]models.Announcement, error) {
	items, err := s.store.Filter(ctx, keep)
	if err != nil {
		return nil, storeError(err, "announcement", action)
	}
	sortNewestFirst(items)
	return items, nil
}

func sortNewestFirst(items []models.Announcement) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].ID > items[j].ID
		}
		return items[i].Date.After(items[j].Date)
	})
}
