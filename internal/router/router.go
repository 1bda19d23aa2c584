// Package router maps client routes to pages and owns the mount/unmount
// lifecycle. Pages ask for navigation through the Navigator methods; the
// router applies the request once the current action has returned.
package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"moneymaven/internal/log"
	"moneymaven/internal/pages"
)

// ErrUnknownRoute is returned when no page is registered for a route.
var ErrUnknownRoute = errors.New("unknown route")

// maxHops bounds redirect chains started by a single navigation.
const maxHops = 8

type delayed struct {
	route string
	due   time.Time
}

// Router implements pages.Navigator.
type Router struct {
	logger *log.Logger

	mu      sync.Mutex
	routes  map[string]pages.Page
	current pages.Page
	queue   []string
	pending *delayed
	flash   string
	now     func() time.Time
}

func New(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Discard()
	}
	return &Router{
		logger: logger.WithComponent(log.ComponentRouter),
		routes: make(map[string]pages.Page),
		now:    time.Now,
	}
}

// Register adds pages to the route table.
func (r *Router) Register(ps ...pages.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		r.routes[p.Route()] = p
	}
}

// Routes lists the registered routes in sorted order.
func (r *Router) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.routes))
	for route := range r.routes {
		out = append(out, route)
	}
	sort.Strings(out)
	return out
}

// Page returns the page registered for route.
func (r *Router) Page(route string) (pages.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.routes[route]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}
	return p, nil
}

// Current returns the mounted page, or nil.
func (r *Router) Current() pages.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate queues a route change. It replaces any delayed navigation.
func (r *Router) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, route)
	r.pending = nil
}

// NavigateAfter schedules a route change. Settle waits for it; leaving the
// page first cancels it.
func (r *Router) NavigateAfter(route string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = &delayed{route: route, due: r.now().Add(delay)}
}

// Flash returns and clears the error left by the last page that redirected
// while mounting.
func (r *Router) Flash() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.flash
	r.flash = ""
	return f
}

// Open unmounts the current page, mounts the page for route and follows any
// redirects it requests.
func (r *Router) Open(ctx context.Context, route string) error {
	if _, err := r.Page(route); err != nil {
		return err
	}
	r.mu.Lock()
	r.queue = append(r.queue[:0], route)
	r.pending = nil
	r.mu.Unlock()
	return r.drain(ctx)
}

// Settle applies queued navigation, then waits for a delayed navigation if
// one is pending.
func (r *Router) Settle(ctx context.Context) error {
	if err := r.drain(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	pending := r.pending
	r.mu.Unlock()
	if pending == nil {
		return nil
	}

	if wait := pending.due.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	if r.pending != pending {
		r.mu.Unlock()
		return nil
	}
	r.pending = nil
	r.queue = append(r.queue, pending.route)
	r.mu.Unlock()
	return r.drain(ctx)
}

func (r *Router) drain(ctx context.Context) error {
	for hops := 0; ; hops++ {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.mu.Unlock()
			return nil
		}
		route := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		if hops >= maxHops {
			return fmt.Errorf("too many redirects, last to %s", route)
		}
		if err := r.mount(ctx, route); err != nil {
			return err
		}
	}
}

func (r *Router) mount(ctx context.Context, route string) error {
	next, err := r.Page(route)
	if err != nil {
		return err
	}

	r.mu.Lock()
	prev := r.current
	r.current = nil
	r.pending = nil
	r.mu.Unlock()

	if prev != nil {
		prev.Unmount()
		r.logger.DebugContext(ctx, "Page unmounted",
			log.NewFields().WithOperation(log.OpUnmount).WithPage(prev.Route()).ToSlice()...)
	}

	if err := next.Mount(ctx); err != nil {
		return fmt.Errorf("mount %s: %w", route, err)
	}
	r.logger.DebugContext(ctx, "Page mounted",
		log.NewFields().WithOperation(log.OpMount).WithPage(route).ToSlice()...)

	r.mu.Lock()
	r.current = next
	if len(r.queue) > 0 && next.Err() != "" {
		r.flash = next.Err()
	}
	r.mu.Unlock()
	return nil
}

// Close unmounts the current page.
func (r *Router) Close() {
	r.mu.Lock()
	prev := r.current
	r.current = nil
	r.queue = nil
	r.pending = nil
	r.mu.Unlock()
	if prev != nil {
		prev.Unmount()
	}
}
