package service

import "strings"

// DefaultPageTitle is shown for paths outside the route table.
const DefaultPageTitle = "ScholarHub"

// Route is one page of the portal shell.
type Route struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Navigation is the shell rendered around every page.
type Navigation struct {
	Current Route   `json:"current"`
	Routes  []Route `json:"routes"`
}

var portalRoutes = []Route{
	{Path: "/", Title: "Dashboard", Label: "Dashboard", Icon: "LayoutDashboard"},
	{Path: "/courses", Title: "My Courses", Label: "Courses", Icon: "BookOpen"},
	{Path: "/grades", Title: "Academic Grades", Label: "Grades", Icon: "GraduationCap"},
	{Path: "/calendar", Title: "Academic Calendar", Label: "Calendar", Icon: "Calendar"},
	{Path: "/announcements", Title: "Announcements", Label: "Announcements", Icon: "Bell"},
	{Path: "/profile", Title: "Student Profile", Label: "Profile", Icon: "User"},
}

// Routes returns the sidebar entries in display order.
func Routes() []Route {
	out := make([]Route, len(portalRoutes))
	copy(out, portalRoutes)
	return out
}

// PageTitle returns the header title for path.
func PageTitle(path string) string {
	if route, ok := lookupRoute(path); ok {
		return route.Title
	}
	return DefaultPageTitle
}

// NavigationFor builds the shell for path. Unknown paths get a route carrying the default title.
func NavigationFor(path string) Navigation {
	current, ok := lookupRoute(path)
	if !ok {
		current = Route{Path: normalisePath(path), Title: DefaultPageTitle}
	}
	return Navigation{Current: current, Routes: Routes()}
}

func lookupRoute(path string) (Route, bool) {
	path = normalisePath(path)
	for _, r := range portalRoutes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

func normalisePath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
