package nav

// Route is one of the storefront's closed set of pages.
type Route string

const (
	RouteHome           Route = "/"
	RouteMenu           Route = "/menu"
	RouteLocation       Route = "/location"
	RouteAbout          Route = "/about"
	RouteAdmin          Route = "/admin"
	RouteAdminDashboard Route = "/admin/dashboard"
)

var routes = map[Route]struct{}{
	RouteHome:           {},
	RouteMenu:           {},
	RouteLocation:       {},
	RouteAbout:          {},
	RouteAdmin:          {},
	RouteAdminDashboard: {},
}

// Resolution is the navigation outcome for a requested route token.
type Resolution struct {
	Route      Route `json:"route"`
	Redirected bool  `json:"redirected"`
}

// Routes returns the closed route set in display order.
func Routes() []Route {
	return []Route{RouteHome, RouteMenu, RouteLocation, RouteAbout, RouteAdmin, RouteAdminDashboard}
}

// IsValid reports whether the token names a known route.
func IsValid(token string) bool {
	_, ok := routes[Route(token)]
	return ok
}

// RequiresAuth reports whether the route is behind the admin gate.
func RequiresAuth(r Route) bool {
	return r == RouteAdminDashboard
}

// Resolve maps a requested token to the route the client should render.
// Unknown tokens land on home; the dashboard redirects to the login page
// when no admin session is active.
func Resolve(token string, isAdmin bool) Resolution {
	if !IsValid(token) {
		return Resolution{Route: RouteHome, Redirected: true}
	}
	route := Route(token)
	if RequiresAuth(route) && !isAdmin {
		return Resolution{Route: RouteAdmin, Redirected: true}
	}
	return Resolution{Route: route}
}
