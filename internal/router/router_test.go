package router

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	route    string
	err      string
	onMount  func()
	mountErr error
	mounts   int
	unmounts int
}

func (p *fakePage) Route() string { return p.route }
func (p *fakePage) Title() string { return p.route }
func (p *fakePage) Mount(context.Context) error {
	p.mounts++
	if p.onMount != nil {
		p.onMount()
	}
	return p.mountErr
}
func (p *fakePage) Unmount()                 { p.unmounts++ }
func (p *fakePage) Render(w io.Writer) error { _, err := io.WriteString(w, p.route); return err }
func (p *fakePage) Err() string              { return p.err }

func TestRouter_OpenMountsAndUnmounts(t *testing.T) {
	r := New(nil)
	home := &fakePage{route: "/"}
	login := &fakePage{route: "/login"}
	r.Register(home, login)

	require.NoError(t, r.Open(context.Background(), "/"))
	assert.Same(t, home, r.Current())
	assert.Equal(t, 1, home.mounts)

	require.NoError(t, r.Open(context.Background(), "/login"))
	assert.Same(t, login, r.Current())
	assert.Equal(t, 1, home.unmounts)

	r.Close()
	assert.Nil(t, r.Current())
	assert.Equal(t, 1, login.unmounts)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := New(nil)
	err := r.Open(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, ErrUnknownRoute)

	_, err = r.Page("/nowhere")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestRouter_RedirectDuringMount(t *testing.T) {
	r := New(nil)
	home := &fakePage{route: "/"}
	profile := &fakePage{route: "/user-profile", err: "User is not logged in."}
	profile.onMount = func() { r.Navigate("/") }
	r.Register(home, profile)

	require.NoError(t, r.Open(context.Background(), "/user-profile"))
	assert.Same(t, home, r.Current())
	assert.Equal(t, 1, profile.unmounts)
	assert.Equal(t, "User is not logged in.", r.Flash())
	assert.Empty(t, r.Flash(), "flash is read once")
}

func TestRouter_SettleAppliesQueuedNavigation(t *testing.T) {
	r := New(nil)
	login := &fakePage{route: "/login"}
	profile := &fakePage{route: "/user-profile"}
	r.Register(login, profile)

	require.NoError(t, r.Open(context.Background(), "/login"))
	r.Navigate("/user-profile")
	assert.Same(t, login, r.Current(), "navigation waits for Settle")

	require.NoError(t, r.Settle(context.Background()))
	assert.Same(t, profile, r.Current())
}

func TestRouter_SettleWaitsForDelayedNavigation(t *testing.T) {
	r := New(nil)
	reg := &fakePage{route: "/registration"}
	login := &fakePage{route: "/login"}
	r.Register(reg, login)

	require.NoError(t, r.Open(context.Background(), "/registration"))
	r.NavigateAfter("/login", 20*time.Millisecond)

	start := time.Now()
	require.NoError(t, r.Settle(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Same(t, login, r.Current())
}

func TestRouter_LeavingCancelsDelayedNavigation(t *testing.T) {
	r := New(nil)
	reg := &fakePage{route: "/registration"}
	login := &fakePage{route: "/login"}
	home := &fakePage{route: "/"}
	r.Register(reg, login, home)

	require.NoError(t, r.Open(context.Background(), "/registration"))
	r.NavigateAfter("/login", time.Hour)
	require.NoError(t, r.Open(context.Background(), "/"))

	require.NoError(t, r.Settle(context.Background()))
	assert.Same(t, home, r.Current())
	assert.Zero(t, login.mounts)
}

func TestRouter_SettleHonoursContext(t *testing.T) {
	r := New(nil)
	reg := &fakePage{route: "/registration"}
	r.Register(reg, &fakePage{route: "/login"})
	require.NoError(t, r.Open(context.Background(), "/registration"))
	r.NavigateAfter("/login", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Settle(ctx), context.Canceled)
}

func TestRouter_RedirectLoop(t *testing.T) {
	r := New(nil)
	a := &fakePage{route: "/a"}
	b := &fakePage{route: "/b"}
	a.onMount = func() { r.Navigate("/b") }
	b.onMount = func() { r.Navigate("/a") }
	r.Register(a, b)

	assert.Error(t, r.Open(context.Background(), "/a"))
}

func TestRouter_MountError(t *testing.T) {
	r := New(nil)
	boom := errors.New("boom")
	r.Register(&fakePage{route: "/", mountErr: boom})
	assert.ErrorIs(t, r.Open(context.Background(), "/"), boom)
}

func TestRouter_Routes(t *testing.T) {
	r := New(nil)
	r.Register(&fakePage{route: "/login"}, &fakePage{route: "/"}, &fakePage{route: "/dashboard"})
	assert.Equal(t, []string{"/", "/dashboard", "/login"}, r.Routes())
}
