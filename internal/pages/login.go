package pages

import (
	"context"
	"fmt"
	"io"

	"moneymaven/internal/api"
	"moneymaven/internal/core"
	"moneymaven/internal/form"
	"moneymaven/internal/log"
)

var loginFields = []fieldLabel{
	{name: form.FieldEmail, label: "Email"},
	{name: form.FieldPassword, label: "Password", secret: true},
}

// Login signs the user in and stores the session token.
type Login struct {
	base
	form *form.Controller
}

func NewLogin(deps Deps) *Login {
	p := &Login{base: newBase(deps, RouteLogin, "Login to MoneyMaven")}
	p.form = form.New(form.Options{
		Name:      RouteLogin,
		Defaults:  map[string]string{form.FieldEmail: "", form.FieldPassword: ""},
		Rules:     form.LoginRules(),
		OnSuccess: form.ResetValues,
		ErrorMessage: func(err error) string {
			return api.Message(err, api.MsgLoginFailed)
		},
		Logger: p.deps.Logger,
	})
	return p
}

func (p *Login) Mount(context.Context) error {
	p.form.Reset()
	return nil
}

func (p *Login) Unmount() {}

func (p *Login) Err() string { return p.form.Err() }

// Form exposes the form state.
func (p *Login) Form() *form.Controller { return p.form }

func (p *Login) Change(field, value string) { p.form.Change(field, value) }

// Submit logs in. On success the token is stored and the profile page opens.
func (p *Login) Submit(ctx context.Context) error {
	err := p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		res, err := p.deps.API.Login(ctx, core.Credentials{
			Email:    v[form.FieldEmail],
			Password: v[form.FieldPassword],
		})
		if err != nil {
			return err
		}
		if err := p.deps.Session.SetToken(ctx, res.Token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "User logged in", log.FieldOperation, log.OpLogin)
	p.navigate(RouteUserProfile)
	return nil
}

func (p *Login) Render(w io.Writer) error {
	s := p.form.State()
	return p.deps.Views.render(w, "login", struct {
		Header     Header
		Fields     []FieldView
		Err        string
		Notice     string
		Submitting bool
	}{p.header(), fieldViews(loginFields, s), s.Err, s.Notice, s.Submitting})
}
