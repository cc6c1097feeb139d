package models

import "time"

// AnnouncementPriority ranks announcements.
type AnnouncementPriority string

const (
	AnnouncementPriorityHigh   AnnouncementPriority = "high"
	AnnouncementPriorityMedium AnnouncementPriority = "medium"
	AnnouncementPriorityLow    AnnouncementPriority = "low"
)

// Valid reports whether p is a known priority.
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case AnnouncementPriorityHigh, AnnouncementPriorityMedium, AnnouncementPriorityLow:
		return true
	}
	return false
}

// Announcement is a feed entry. Content is markdown.
type Announcement struct {
	ID       int                  `json:"id"`
	Title    string               `json:"title"`
	Content  string               `json:"content"`
	Author   string               `json:"author"`
	Category string               `json:"category"`
	Priority AnnouncementPriority `json:"priority"`
	Date     time.Time            `json:"date"`
	Read     bool                 `json:"read"`
}
