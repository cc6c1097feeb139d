package repository

import (
	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/seed"
	"github.com/noah-isme/scholarhub-api/pkg/latency"
)

// Store owns one table per entity. It is built once at start-up and shared by the services.
type Store struct {
	Students      *Table[models.Student]
	Courses       *Table[models.Course]
	Grades        *Table[models.Grade]
	Events        *Table[models.Event]
	Announcements *Table[models.Announcement]
}

// NewStore seeds every table from ds.
func NewStore(ds seed.Dataset, sim *latency.Simulator, observer OperationObserver) *Store {
	return &Store{
		Students:      NewTable("students", ds.Students, func(s *models.Student) *int { return &s.ID }, sim, observer),
		Courses:       NewTable("courses", ds.Courses, func(c *models.Course) *int { return &c.ID }, sim, observer),
		Grades:        NewTable("grades", ds.Grades, func(g *models.Grade) *int { return &g.ID }, sim, observer),
		Events:        NewTable("events", ds.Events, func(e *models.Event) *int { return &e.ID }, sim, observer),
		Announcements: NewTable("announcements", ds.Announcements, func(a *models.Announcement) *int { return &a.ID }, sim, observer),
	}
}
