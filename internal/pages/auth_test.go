package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneymaven/internal/api"
	"moneymaven/internal/core"
	"moneymaven/internal/form"
)

func TestLogin_Success(t *testing.T) {
	h := newHarness(t, "")
	h.server.handle("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds core.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds.Email)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"jwt-token"}`))
	})

	p := NewLogin(h.deps)
	require.NoError(t, p.Mount(context.Background()))
	p.Change(form.FieldEmail, "ana@example.com")
	p.Change(form.FieldPassword, "secret1")

	require.NoError(t, p.Submit(context.Background()))

	tok, ok := h.session.Token()
	assert.True(t, ok)
	assert.Equal(t, "jwt-token", tok)
	assert.Equal(t, []string{RouteUserProfile}, h.nav.routes())
	assert.False(t, p.Form().Submitting())
	assert.Empty(t, p.Form().Value(form.FieldPassword), "values reset after login")
}

func TestLogin_InvalidNeverCallsServer(t *testing.T) {
	h := newHarness(t, "")
	p := NewLogin(h.deps)
	p.Change(form.FieldEmail, "not-an-email")
	p.Change(form.FieldPassword, "123")

	assert.ErrorIs(t, p.Submit(context.Background()), form.ErrInvalid)
	assert.Zero(t, h.server.requests())
	assert.Equal(t, "Invalid email format!", p.Form().Errors().Get(form.FieldEmail))
	assert.Equal(t, "Password must be at least 6 characters!", p.Form().Errors().Get(form.FieldPassword))
	assert.Empty(t, h.nav.routes())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", http.StatusUnauthorized, `Wrong password`, "Wrong password"},
		{"no message", http.StatusUnauthorized, ``, api.MsgLoginFailed},
		{"non-200 success", http.StatusAccepted, `{"token":"x"}`, api.MsgLoginFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.server.reply("POST /login", tt.status, tt.body)
			p := NewLogin(h.deps)
			p.Change(form.FieldEmail, "ana@example.com")
			p.Change(form.FieldPassword, "secret1")

			assert.Error(t, p.Submit(context.Background()))
			assert.Equal(t, tt.want, p.Err())
			assert.False(t, h.session.LoggedIn())
			assert.Empty(t, h.nav.routes())
		})
	}
}

func TestLogin_ServerDown(t *testing.T) {
	h := newHarness(t, "")
	h.server.srv.Close()
	p := NewLogin(h.deps)
	p.Change(form.FieldEmail, "ana@example.com")
	p.Change(form.FieldPassword, "secret1")

	assert.Error(t, p.Submit(context.Background()))
	assert.Equal(t, api.MsgNoResponse, p.Err())
}

func fillRegistration(p *Registration) {
	p.Fill(map[string]string{
		form.FieldFullName:        "Ana",
		form.FieldLastname:        "Silva",
		form.FieldEmail:           "ana@example.com",
		form.FieldBirthday:        "1990-04-12",
		form.FieldCountry:         "Portugal",
		form.FieldNationality:     "Portuguese",
		form.FieldPhoneNumber:     "+351912345678",
		form.FieldOccupation:      "Engineer",
		form.FieldPassword:        "secret1",
		form.FieldConfirmPassword: "secret1",
	})
}

func TestRegistration_PasswordMismatchNeverCallsServer(t *testing.T) {
	h := newHarness(t, "")
	p := NewRegistration(h.deps)
	fillRegistration(p)
	p.Change(form.FieldConfirmPassword, "secret2")

	assert.ErrorIs(t, p.Submit(context.Background()), form.ErrInvalid)
	assert.Equal(t, "Passwords do not match!", p.Form().Errors().Get(form.FieldConfirmPassword))
	assert.Zero(t, h.server.requests())
}

func TestRegistration_Success(t *testing.T) {
	h := newHarness(t, "")
	h.deps.RedirectDelay = 50 * time.Millisecond
	h.server.handle("POST /registration", func(w http.ResponseWriter, r *http.Request) {
		var reg map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		assert.Equal(t, "Ana", reg["name"], "full name travels as name")
		assert.NotContains(t, reg, "confirmPassword")
		w.WriteHeader(http.StatusCreated)
	})

	p := NewRegistration(h.deps)
	fillRegistration(p)
	require.NoError(t, p.Submit(context.Background()))

	assert.Equal(t, MsgRegistered, p.Form().Notice())
	assert.Empty(t, p.Form().Value(form.FieldEmail), "form reset")
	require.Len(t, h.nav.calls, 1)
	assert.Equal(t, navCall{route: RouteLogin, delay: 50 * time.Millisecond}, h.nav.calls[0])
}

func TestRegistration_DefaultDelay(t *testing.T) {
	h := newHarness(t, "")
	h.server.reply("POST /registration", http.StatusCreated, "")
	p := NewRegistration(h.deps)
	fillRegistration(p)
	require.NoError(t, p.Submit(context.Background()))
	assert.Equal(t, DefaultRedirectDelay, h.nav.calls[0].delay)
}

func TestRegistration_Conflict(t *testing.T) {
	h := newHarness(t, "")
	h.server.reply("POST /registration", http.StatusConflict, `{"message":"exists"}`)
	p := NewRegistration(h.deps)
	fillRegistration(p)

	assert.Error(t, p.Submit(context.Background()))
	assert.Equal(t, api.MsgEmailInUse, p.Err())
	assert.Empty(t, h.nav.calls)
	assert.Equal(t, "ana@example.com", p.Form().Value(form.FieldEmail), "values kept on failure")
}

func TestHome_RendersNavigationForSessionState(t *testing.T) {
	h := newHarness(t, "")
	home := NewHome(h.deps)
	out := render(t, home)
	assert.Contains(t, out, "Get Started (/registration)")
	assert.NotContains(t, out, "Dashboard")

	require.NoError(t, h.session.SetToken(context.Background(), "tok"))
	out = render(t, home)
	assert.Contains(t, out, "Tracker (/expenses)")
	assert.NotContains(t, out, "Login")
}

func TestLogin_RenderMasksPassword(t *testing.T) {
	h := newHarness(t, "")
	p := NewLogin(h.deps)
	p.Change(form.FieldEmail, "ana@example.com")
	p.Change(form.FieldPassword, "secret1")
	out := render(t, p)
	assert.Contains(t, out, "ana@example.com")
	assert.NotContains(t, out, "secret1")
}
