package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrNotFound         = errors.New("route not found")
	ErrNavigationDenied = errors.New("navigation denied")
	ErrRedirectLoop     = errors.New("too many redirects")
)

// maxRedirects bounds a single Go call.
const maxRedirects = 10

// Route binds a path pattern to guards. A pattern segment of the form {name}
// matches any single non-empty segment.
type Route struct {
	Pattern string
	Guards  []Guard
}

// Match is a resolved route with its path parameters.
type Match struct {
	Path    string
	Pattern string
	Params  map[string]string
}

// Router is a Navigator: guards call Navigate while Go is running and the
// router follows the redirect.
type Router struct {
	mu      sync.Mutex
	routes  []Route
	pending string
	current string
}

func New() *Router {
	return &Router{}
}

// Handle registers a route. Guards run in order; the first denial stops.
func (r *Router) Handle(pattern string, guards ...Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, Route{Pattern: pattern, Guards: guards})
}

// Navigate records a redirect for the Go call in progress. Only the first
// request per guard evaluation is kept.
func (r *Router) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == "" {
		r.pending = route
	}
}

// Current is the last route Go resolved to.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Go resolves path, following guard redirects. It returns the route finally
// admitted. When a guard denies without redirecting, Go returns
// ErrNavigationDenied.
func (r *Router) Go(ctx context.Context, path string) (*Match, error) {
	for range maxRedirects {
		m, guards, err := r.lookup(path)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.pending = ""
		r.mu.Unlock()

		if allowed(ctx, guards) {
			r.mu.Lock()
			r.current = m.Path
			r.mu.Unlock()
			return m, nil
		}

		r.mu.Lock()
		next := r.pending
		r.pending = ""
		r.mu.Unlock()

		if next == "" {
			return nil, fmt.Errorf("%w: %s", ErrNavigationDenied, path)
		}
		path = next
	}
	return nil, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}

func allowed(ctx context.Context, guards []Guard) bool {
	for _, g := range guards {
		if !g(ctx) {
			return false
		}
	}
	return true
}

func (r *Router) lookup(path string) (*Match, []Guard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rt := range r.routes {
		if params, ok := match(rt.Pattern, path); ok {
			return &Match{Path: path, Pattern: rt.Pattern, Params: params}, rt.Guards, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

func match(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return nil, false
	}

	params := map[string]string{}
	for i, p := range ps {
		if name, ok := strings.CutPrefix(p, "{"); ok && strings.HasSuffix(name, "}") {
			if xs[i] == "" {
				return nil, false
			}
			params[strings.TrimSuffix(name, "}")] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
