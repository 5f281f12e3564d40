package pages

import "sync"

type Route string

const (
	RouteLanding   Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteDocuments Route = "/dashboard/documents"
	RouteSkills    Route = "/dashboard/skills"
	RouteRoles     Route = "/dashboard/roles"
	RouteJobs      Route = "/dashboard/jobs"
	RouteChat      Route = "/dashboard/chat"
)

// Navigator remembers where a visitor should be sent next. Front ends read
// and consume the pending route after every action.
type Navigator struct {
	mu        sync.Mutex
	current   Route
	pending   *Route
	listeners []func(Route)
}

func NewNavigator() *Navigator {
	return &Navigator{current: RouteLanding}
}

func (n *Navigator) Navigate(route Route) {
	n.mu.Lock()
	n.current = route
	n.pending = &route
	listeners := append([]func(Route){}, n.listeners...)
	n.mu.Unlock()

	for _, listener := range listeners {
		listener(route)
	}
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// TakeRedirect returns the route requested since the last call, if any.
func (n *Navigator) TakeRedirect() (Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return "", false
	}
	route := *n.pending
	n.pending = nil
	return route, true
}

func (n *Navigator) OnNavigate(listener func(Route)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, listener)
}
