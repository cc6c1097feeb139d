package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

func TestAnnouncementHandlerListFilters(t *testing.T) {
	handler := NewAnnouncementHandler(newHandlerServices(t).announcements)

	cases := map[string]int{
		"/announcements":                     7,
		"/announcements?unread=true":         4,
		"/announcements?priority=high":       2,
		"/announcements?category=Facilities": 2,
	}
	for path, count := range cases {
		c, w := newGinContext(http.MethodGet, path, nil)
		handler.List(c)

		require.Equal(t, http.StatusOK, w.Code, path)
		var items []models.Announcement
		decodeEnvelope(t, w, &items)
		assert.Len(t, items, count, path)
	}
}

func TestAnnouncementHandlerRejectsUnknownPriority(t *testing.T) {
	handler := NewAnnouncementHandler(newHandlerServices(t).announcements)

	c, w := newGinContext(http.MethodGet, "/announcements?priority=urgent", nil)
	handler.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnouncementHandlerMarkRead(t *testing.T) {
	svcs := newHandlerServices(t)
	handler := NewAnnouncementHandler(svcs.announcements)

	c, w := newGinContext(http.MethodPost, "/announcements/2/read", nil)
	withID(c, "2")
	handler.MarkRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	var item models.Announcement
	decodeEnvelope(t, w, &item)
	assert.True(t, item.Read)

	c, w = newGinContext(http.MethodGet, "/announcements?unread=true", nil)
	handler.List(c)
	var unread []models.Announcement
	decodeEnvelope(t, w, &unread)
	assert.Len(t, unread, 3)
}

func TestAnnouncementHandlerMarkAllRead(t *testing.T) {
	handler := NewAnnouncementHandler(newHandlerServices(t).announcements)

	c, w := newGinContext(http.MethodPost, "/announcements/read-all", nil)
	handler.MarkAllRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Announcement
	env := decodeEnvelope(t, w, &items)
	assert.Equal(t, "All announcements marked as read", env.Meta["notice"])
	require.Len(t, items, 7)
	for _, item := range items {
		assert.True(t, item.Read)
	}
}

func TestAnnouncementHandlerRecent(t *testing.T) {
	handler := NewAnnouncementHandler(newHandlerServices(t).announcements)

	c, w := newGinContext(http.MethodGet, "/announcements/recent?limit=2", nil)
	handler.Recent(c)

	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Announcement
	decodeEnvelope(t, w, &items)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}
