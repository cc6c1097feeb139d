package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// AnnouncementHandler exposes announcement endpoints.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementHandler constructs AnnouncementHandler.
func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List godoc
// @Summary List announcements, newest first
// @Tags Announcements
// @Produce json
// @Param unread query bool false "Only unread announcements"
// @Param priority query string false "high, medium or low"
// @Param category query string false "Category name"
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		items []models.Announcement
		err   error
	)
	switch {
	case c.Query("unread") == "true":
		items, err = h.announcements.Unread(ctx)
	case strings.TrimSpace(c.Query("priority")) != "":
		items, err = h.announcements.ByPriority(ctx, models.AnnouncementPriority(strings.TrimSpace(c.Query("priority"))))
	case strings.TrimSpace(c.Query("category")) != "":
		items, err = h.announcements.ByCategory(ctx, strings.TrimSpace(c.Query("category")))
	default:
		items, err = h.announcements.List(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items)
}

// Recent godoc
// @Summary Most recent announcements
// @Tags Announcements
// @Produce json
// @Param limit query int false "Maximum number of announcements"
// @Success 200 {object} response.Envelope
// @Router /announcements/recent [get]
func (h *AnnouncementHandler) Recent(c *gin.Context) {
	limit, ok := queryInt(c, "limit", service.DefaultRecentLimit)
	if !ok {
		return
	}
	items, err := h.announcements.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get announcement detail
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.announcements.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// MarkRead godoc
// @Summary Mark one announcement as read
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id}/read [post]
func (h *AnnouncementHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.announcements.MarkRead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// MarkAllRead godoc
// @Summary Mark every announcement as read
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /announcements/read-all [post]
func (h *AnnouncementHandler) MarkAllRead(c *gin.Context) {
	items, err := h.announcements.MarkAllRead(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, items, "All announcements marked as read")
}

// Create godoc
// @Summary Publish announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body service.CreateAnnouncementRequest true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.announcements.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param payload body service.UpdateAnnouncementRequest true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.announcements.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Param id path int true "Announcement ID"
// @Success 204
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.announcements.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
