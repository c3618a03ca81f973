package tui

import "github.com/mmcdole/artic/internal/tui/home"

// Route names
const (
	RouteHome          = "Home"
	RouteSingleArtwork = home.RouteSingleArtwork
)

// Route is one entry of the navigation stack
type Route struct {
	Name   string
	Params map[string]string
}

// Router is the navigation stack. Screens call Navigate during Update; the
// root model picks the change up afterwards with TakeChange.
type Router struct {
	stack   []Route
	changed bool
}

// NewRouter creates a router resting on the given root route
func NewRouter(root string) *Router {
	return &Router{stack: []Route{{Name: root}}}
}

// Navigate pushes a route
func (r *Router) Navigate(route string, params map[string]string) {
	r.stack = append(r.stack, Route{Name: route, Params: params})
	r.changed = true
}

// Back pops the current route. The root route is never popped.
func (r *Router) Back() bool {
	if len(r.stack) <= 1 {
		return false
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.changed = true
	return true
}

// Current returns the route on top of the stack
func (r *Router) Current() Route {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of routes on the stack
func (r *Router) Depth() int {
	return len(r.stack)
}

// TakeChange returns the current route if it changed since the last call
func (r *Router) TakeChange() (Route, bool) {
	if !r.changed {
		return Route{}, false
	}
	r.changed = false
	return r.Current(), true
}
