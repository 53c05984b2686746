// Package nav describes the navigation capability the client core uses for
// its two side effects: returning to the root view on logout and on 401.
package nav

// RootRoute is the application's root (home) route.
const RootRoute = "/"

// Navigator moves the presentation layer to a route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Recorder is a Navigator that remembers every route it was asked to show.
// Used by tests and as a no-op default.
type Recorder struct {
	Routes []string
}

func (r *Recorder) Navigate(route string) {
	r.Routes = append(r.Routes, route)
}

// Count returns how many times route was requested.
func (r *Recorder) Count(route string) int {
	n := 0
	for _, rt := range r.Routes {
		if rt == route {
			n++
		}
	}
	return n
}
