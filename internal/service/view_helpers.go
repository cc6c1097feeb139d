package service

import (
	"context"
	"errors"
	"strings"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/calendar"
	"github.com/noah-isme/scholarhub-api/internal/dto"
	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/markdown"
)

// loadFailed collapses a view load error into LOAD_FAILED with the page message. Validation and
// cancellation errors keep their own code.
func loadFailed(err error, message string) error {
	if errors.Is(err, appErrors.ErrValidation) || errors.Is(err, appErrors.ErrCanceled) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, appErrors.ErrCanceled.Code, appErrors.ErrCanceled.Status, "request cancelled")
	}
	return appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, message)
}

func yearLabel(year int) string {
	switch year {
	case 1:
		return "1st Year"
	case 2:
		return "2nd Year"
	case 3:
		return "3rd Year"
	default:
		return "4th Year"
	}
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

func courseCard(c models.Course) dto.CourseCard {
	return dto.CourseCard{
		Course:            c,
		EnrollmentRatio:   academics.EnrollmentRatio(c.Enrolled, c.Capacity),
		EnrollmentPercent: academics.EnrollmentPercent(c.Enrolled, c.Capacity),
		NearCapacity:      academics.NearCapacity(c.Enrolled, c.Capacity),
		Full:              c.Capacity > 0 && c.Enrolled >= c.Capacity,
	}
}

func courseCards(courses []models.Course) []dto.CourseCard {
	cards := make([]dto.CourseCard, 0, len(courses))
	for _, c := range courses {
		cards = append(cards, courseCard(c))
	}
	return cards
}

func eventItems(events []models.Event) []dto.EventItem {
	items := make([]dto.EventItem, 0, len(events))
	for _, e := range events {
		items = append(items, dto.EventItem{Event: e, Color: calendar.TypeColor(e.Type)})
	}
	return items
}

func announcementCards(items []models.Announcement) []dto.AnnouncementCard {
	cards := make([]dto.AnnouncementCard, 0, len(items))
	for _, a := range items {
		cards = append(cards, dto.AnnouncementCard{Announcement: a, HTML: markdown.Render(a.Content)})
	}
	return cards
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
