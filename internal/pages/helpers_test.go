package pages

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"moneymaven/internal/api"
	"moneymaven/internal/core"
	"moneymaven/internal/session"
	"moneymaven/internal/storage/memory"
)

var fixedNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

type navCall struct {
	route string
	delay time.Duration
}

type recordingNav struct {
	mu    sync.Mutex
	calls []navCall
}

func (n *recordingNav) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, navCall{route: route})
}

func (n *recordingNav) NavigateAfter(route string, delay time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, navCall{route: route, delay: delay})
}

func (n *recordingNav) routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.calls))
	for i, c := range n.calls {
		out[i] = c.route
	}
	return out
}

// fakeServer routes "METHOD /path" to handlers and counts every request.
type fakeServer struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
	total    int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{t: t, handlers: map[string]http.HandlerFunc{}, hits: map[string]int{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.hits[key]++
		f.total++
		h := f.handlers[key]
		f.mu.Unlock()
		if h == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) handle(key string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[key] = h
}

func (f *fakeServer) reply(key string, status int, body string) {
	f.handle(key, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeServer) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeServer) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

type harness struct {
	server  *fakeServer
	session *session.Provider
	nav     *recordingNav
	deps    Deps
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	server := newFakeServer(t)
	sess := session.NewProvider(memory.New(), nil)
	if token != "" {
		require.NoError(t, sess.SetToken(context.Background(), token))
	}
	nav := &recordingNav{}
	client := api.NewClient(api.Config{BaseURL: server.srv.URL, Tokens: sess})
	return &harness{
		server:  server,
		session: sess,
		nav:     nav,
		deps: Deps{
			API:     client,
			Session: sess,
			Nav:     nav,
			Views:   MustRenderer(),
			Now:     func() time.Time { return fixedNow },
		},
	}
}

func render(t *testing.T, p Page) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, p.Render(&b))
	return b.String()
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []core.Expense
}

func (r *recordingPublisher) PublishExpenseRecorded(_ context.Context, e core.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, e)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }
