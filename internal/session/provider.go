// Package session owns the client's bearer token. There is one Provider per
// process; pages read the token from it and the navigation header follows
// its logged-in state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"moneymaven/internal/log"
	"moneymaven/internal/storage"
)

// TokenKey is the storage key the token lives under.
const TokenKey = "token"

// Provider holds the session token in memory and mirrors every change to
// persistent storage.
type Provider struct {
	store  storage.Store
	logger *log.Logger

	mu    sync.RWMutex
	token string

	subMu  sync.Mutex
	subs   map[int]func(loggedIn bool)
	nextID int
}

func NewProvider(store storage.Store, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Discard()
	}
	return &Provider{
		store:  store,
		logger: logger.WithComponent(log.ComponentSession),
		subs:   make(map[int]func(bool)),
	}
}

// Init loads a previously stored token. A missing token is not an error.
func (p *Provider) Init(ctx context.Context) error {
	v, err := p.store.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		v = ""
	} else if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	p.mu.Lock()
	p.token = v
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "Session initialized", log.FieldLoggedIn, v != "")
	return nil
}

// Token returns the current token and whether one is set.
func (p *Provider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.token != ""
}

// LoggedIn reports whether a token is present.
func (p *Provider) LoggedIn() bool {
	_, ok := p.Token()
	return ok
}

// SetToken stores a new token and notifies subscribers.
func (p *Provider) SetToken(ctx context.Context, value string) error {
	if value == "" {
		return p.ClearToken(ctx)
	}
	if err := p.store.Set(ctx, TokenKey, value); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}

	p.mu.Lock()
	p.token = value
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "Session token stored", log.FieldOperation, log.OpLogin)
	p.notify(true)
	return nil
}

// ClearToken removes the token and notifies subscribers. The in-memory token
// is dropped even when storage fails.
func (p *Provider) ClearToken(ctx context.Context) error {
	p.mu.Lock()
	p.token = ""
	p.mu.Unlock()

	err := p.store.Delete(ctx, TokenKey)
	p.logger.InfoContext(ctx, "Session token cleared", log.FieldOperation, log.OpLogout)
	p.notify(false)
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called synchronously with the new logged-in
// state after every change. The returned func unregisters it.
func (p *Provider) Subscribe(fn func(loggedIn bool)) (unsubscribe func()) {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}
}

func (p *Provider) notify(loggedIn bool) {
	p.subMu.Lock()
	fns := make([]func(bool), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()

	for _, fn := range fns {
		fn(loggedIn)
	}
}

// Close drops every subscriber.
func (p *Provider) Close() {
	p.subMu.Lock()
	p.subs = make(map[int]func(bool))
	p.subMu.Unlock()
}

// Subject returns the user the token was issued to, read from the "sub" or
// "email" claim. The signature is not checked: the server does that.
func (p *Provider) Subject() string {
	token, ok := p.Token()
	if !ok {
		return ""
	}
	return subjectOf(token)
}

func subjectOf(raw string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}
