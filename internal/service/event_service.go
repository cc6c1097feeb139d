package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/calendar"
	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

// DefaultUpcomingLimit caps Upcoming when no limit is given.
const DefaultUpcomingLimit = 10

// CreateEventRequest holds payload for creating calendar events.
type CreateEventRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date" validate:"required"`
	Time        string           `json:"time"`
	Location    string           `json:"location"`
	Type        models.EventType `json:"type" validate:"required,event_type"`
}

// UpdateEventRequest is a partial update; nil fields keep their stored value.
type UpdateEventRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1"`
	Description *string           `json:"description"`
	Date        *time.Time        `json:"date"`
	Time        *string           `json:"time"`
	Location    *string           `json:"location"`
	Type        *models.EventType `json:"type" validate:"omitempty,event_type"`
}

// EventService handles calendar event use-cases.
type EventService struct {
	store     recordStore[models.Event]
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs the event service.
func NewEventService(store recordStore[models.Event], cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{store: store, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns every event, earliest first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "event", "list events")
	}
	calendar.SortByDate(events)
	return events, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, "event", "load event")
	}
	return &event, nil
}

// ByDateRange returns events with start <= date <= end, earliest first.
func (s *EventService) ByDateRange(ctx context.Context, start, end time.Time) ([]models.Event, error) {
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must not be before start")
	}
	events, err := s.store.Filter(ctx, func(e models.Event) bool {
		return !e.Date.Before(start) && !e.Date.After(end)
	})
	if err != nil {
		return nil, storeError(err, "event", "list events in range")
	}
	calendar.SortByDate(events)
	return events, nil
}

// ByType returns events of one type, earliest first.
func (s *EventService) ByType(ctx context.Context, eventType models.EventType) ([]models.Event, error) {
	if !eventType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	events, err := s.store.Filter(ctx, func(e models.Event) bool { return e.Type == eventType })
	if err != nil {
		return nil, storeError(err, "event", "list events by type")
	}
	calendar.SortByDate(events)
	return events, nil
}

// Upcoming returns at most limit events dated now or later, earliest first.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	now := s.now()
	events, err := s.store.Filter(ctx, func(e models.Event) bool { return !e.Date.Before(now) })
	if err != nil {
		return nil, storeError(err, "event", "list upcoming events")
	}
	calendar.SortByDate(events)
	return takeFirst(events, limit), nil
}

// UpcomingDeadlines returns at most limit exams and assignments dated now or later, earliest first.
func (s *EventService) UpcomingDeadlines(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	now := s.now()
	events, err := s.store.Filter(ctx, func(e models.Event) bool {
		return (e.Type == models.EventTypeExam || e.Type == models.EventTypeAssignment) && !e.Date.Before(now)
	})
	if err != nil {
		return nil, storeError(err, "event", "list upcoming deadlines")
	}
	calendar.SortByDate(events)
	return takeFirst(events, limit), nil
}

// Today returns the events on the current calendar day.
func (s *EventService) Today(ctx context.Context) ([]models.Event, error) {
	today := s.now().UTC()
	events, err := s.store.Filter(ctx, func(e models.Event) bool { return calendar.SameDay(today, e.Date) })
	if err != nil {
		return nil, storeError(err, "event", "list today's events")
	}
	calendar.SortByDate(events)
	return events, nil
}

// Create adds an event.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	created, err := s.store.Insert(ctx, models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.UTC(),
		Time:        req.Time,
		Location:    req.Location,
		Type:        req.Type,
	})
	if err != nil {
		return nil, storeError(err, "event", "create event")
	}
	s.cache.InvalidateDashboards(ctx)
	return &created, nil
}

// Update merges the provided fields into the stored event.
func (s *EventService) Update(ctx context.Context, id int, req UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid event payload")
	}
	updated, err := s.store.Update(ctx, id, func(e *models.Event) error {
		setString(&e.Title, req.Title)
		setString(&e.Description, req.Description)
		if req.Date != nil {
			e.Date = req.Date.UTC()
		}
		setString(&e.Time, req.Time)
		setString(&e.Location, req.Location)
		if req.Type != nil {
			e.Type = *req.Type
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "event", "update event")
	}
	s.cache.InvalidateDashboards(ctx)
	return &updated, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "event", "delete event")
	}
	s.cache.InvalidateDashboards(ctx)
	return nil
}
