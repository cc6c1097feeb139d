package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/calendar"
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/service"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// EventHandler exposes calendar event endpoints.
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List godoc
// @Summary List events, earliest first
// @Tags Events
// @Produce json
// @Param type query string false "exam, assignment, lecture, holiday or other"
// @Param start query string false "Range start (YYYY-MM-DD), requires end"
// @Param end query string false "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		events []models.Event
		err    error
	)
	eventType := strings.TrimSpace(c.Query("type"))
	start, end := strings.TrimSpace(c.Query("start")), strings.TrimSpace(c.Query("end"))
	switch {
	case eventType != "":
		events, err = h.events.ByType(ctx, models.EventType(eventType))
	case start != "" || end != "":
		from, to, ok := parseRange(c, start, end)
		if !ok {
			return
		}
		events, err = h.events.ByDateRange(ctx, from, to)
	default:
		events, err = h.events.List(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, events)
}

// Upcoming godoc
// @Summary Upcoming events
// @Tags Events
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} response.Envelope
// @Router /events/upcoming [get]
func (h *EventHandler) Upcoming(c *gin.Context) {
	limit, ok := queryInt(c, "limit", service.DefaultUpcomingLimit)
	if !ok {
		return
	}
	events, err := h.events.Upcoming(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Deadlines godoc
// @Summary Upcoming exams and assignments
// @Tags Events
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} response.Envelope
// @Router /events/deadlines [get]
func (h *EventHandler) Deadlines(c *gin.Context) {
	limit, ok := queryInt(c, "limit", service.DefaultUpcomingLimit)
	if !ok {
		return
	}
	events, err := h.events.UpcomingDeadlines(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Today godoc
// @Summary Events happening today
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /events/today [get]
func (h *EventHandler) Today(c *gin.Context) {
	events, err := h.events.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Get godoc
// @Summary Get event detail
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Param id path int true "Event ID"
// @Success 204
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// parseRange reads an inclusive day range; end covers its whole day.
func parseRange(c *gin.Context, start, end string) (time.Time, time.Time, bool) {
	if start == "" || end == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start and end are both required"))
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(calendar.DayLayout, start)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start must be formatted YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(calendar.DayLayout, end)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end must be formatted YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), true
}
