package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageTitle(t *testing.T) {
	cases := map[string]string{
		"/":             "Dashboard",
		"/courses":      "My Courses",
		"/grades/":      "Academic Grades",
		"/calendar?m=1": "Academic Calendar",
		"announcements": "Announcements",
		"/profile":      "Student Profile",
		"/settings":     DefaultPageTitle,
		"":              "Dashboard",
	}
	for path, want := range cases {
		assert.Equal(t, want, PageTitle(path), path)
	}
}

func TestNavigationFor(t *testing.T) {
	nav := NavigationFor("/courses")

	assert.Equal(t, "/courses", nav.Current.Path)
	assert.Len(t, nav.Routes, 6)
	assert.Equal(t, "Dashboard", nav.Routes[0].Label)

	unknown := NavigationFor("/nowhere/")
	assert.Equal(t, "/nowhere", unknown.Current.Path)
	assert.Equal(t, DefaultPageTitle, unknown.Current.Title)
}

func TestRoutesReturnsCopy(t *testing.T) {
	routes := Routes()
	routes[0].Title = "changed"

	assert.Equal(t, "Dashboard", PageTitle("/"))
}
