// Package academics holds the pure aggregations the portal derives from grade and course records.
package academics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

// ComputeGPA returns the credit-weighted average of grade points. It returns 0 for an empty list
// and when the credits sum to zero. The value is not rounded.
func ComputeGPA(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var weighted float64
	credits := 0
	for _, g := range grades {
		weighted += g.Points * float64(g.Credits)
		credits += g.Credits
	}
	if credits == 0 {
		return 0
	}
	return weighted / float64(credits)
}

// FormatGPA renders gpa with two decimals.
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'f', 2, 64)
}

// TotalCredits sums the credits of grades.
func TotalCredits(grades []models.Grade) int {
	total := 0
	for _, g := range grades {
		total += g.Credits
	}
	return total
}

// Distribution counts grades per letter bucket. Letters outside A-F land in Unclassified.
type Distribution struct {
	A            int `json:"A"`
	B            int `json:"B"`
	C            int `json:"C"`
	D            int `json:"D"`
	F            int `json:"F"`
	Unclassified int `json:"unclassified"`
}

// Total returns the number of bucketed grades including unclassified ones.
func (d Distribution) Total() int {
	return d.A + d.B + d.C + d.D + d.F + d.Unclassified
}

// GradeDistribution buckets grades by the first character of the letter grade, so A+, A and A-
// all count as A. Matching is case-sensitive: a lowercase letter is unclassified.
func GradeDistribution(grades []models.Grade) Distribution {
	var dist Distribution
	for _, g := range grades {
		letter := strings.TrimSpace(g.Grade)
		if letter == "" {
			dist.Unclassified++
			continue
		}
		switch letter[:1] {
		case "A":
			dist.A++
		case "B":
			dist.B++
		case "C":
			dist.C++
		case "D":
			dist.D++
		case "F":
			dist.F++
		default:
			dist.Unclassified++
		}
	}
	return dist
}

// FilterBySemester keeps the grades recorded in semester. An empty semester or "all" keeps
// everything.
func FilterBySemester(grades []models.Grade, semester string) []models.Grade {
	if semester == "" || semester == models.SemesterAll {
		out := make([]models.Grade, len(grades))
		copy(out, grades)
		return out
	}
	out := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if g.Semester == semester {
			out = append(out, g)
		}
	}
	return out
}

// Semesters returns the distinct semester labels, most recent first.
func Semesters(grades []models.Grade) []string {
	seen := make(map[string]struct{}, len(grades))
	labels := make([]string, 0, len(grades))
	for _, g := range grades {
		if _, ok := seen[g.Semester]; ok {
			continue
		}
		seen[g.Semester] = struct{}{}
		labels = append(labels, g.Semester)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return newerSemester(labels[i], labels[j])
	})
	return labels
}

var termOrder = map[string]int{
	"winter": 0,
	"spring": 1,
	"summer": 2,
	"fall":   3,
	"autumn": 3,
}

type semesterKey struct {
	year int
	term int
}

func parseSemester(label string) (semesterKey, bool) {
	fields := strings.Fields(label)
	if len(fields) != 2 {
		return semesterKey{}, false
	}
	term, ok := termOrder[strings.ToLower(fields[0])]
	if !ok {
		return semesterKey{}, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return semesterKey{}, false
	}
	return semesterKey{year: year, term: term}, true
}

// newerSemester orders parseable labels chronologically (newest first) ahead of free-text labels,
// which fall back to reverse lexical order.
func newerSemester(a, b string) bool {
	ka, okA := parseSemester(a)
	kb, okB := parseSemester(b)
	switch {
	case okA && okB:
		if ka.year != kb.year {
			return ka.year > kb.year
		}
		if ka.term != kb.term {
			return ka.term > kb.term
		}
		return a > b
	case okA:
		return true
	case okB:
		return false
	default:
		return a > b
	}
}
