package pages

import (
	"context"
	"io"
	"time"

	"moneymaven/internal/api"
	"moneymaven/internal/core"
	"moneymaven/internal/form"
)

// MsgRegistered is shown after a successful sign-up, before the redirect.
const MsgRegistered = "Registration successful! Redirecting to login..."

// DefaultRedirectDelay is how long the success notice stays before the login page opens.
const DefaultRedirectDelay = 2 * time.Second

var registrationFields = []fieldLabel{
	{name: form.FieldFullName, label: "Full name"},
	{name: form.FieldLastname, label: "Lastname"},
	{name: form.FieldEmail, label: "Email"},
	{name: form.FieldBirthday, label: "Birthday (YYYY-MM-DD)"},
	{name: form.FieldCountry, label: "Country of residence"},
	{name: form.FieldNationality, label: "Nationality"},
	{name: form.FieldPhoneNumber, label: "Phone number"},
	{name: form.FieldOccupation, label: "Occupation"},
	{name: form.FieldPassword, label: "Password", secret: true},
	{name: form.FieldConfirmPassword, label: "Confirm password", secret: true},
}

// Registration creates an account and then sends the user to the login page.
type Registration struct {
	base
	form *form.Controller
}

func NewRegistration(deps Deps) *Registration {
	p := &Registration{base: newBase(deps, RouteRegistration, "Register for MoneyMaven")}
	defaults := make(map[string]string, len(registrationFields))
	for _, f := range registrationFields {
		defaults[f.name] = ""
	}
	p.form = form.New(form.Options{
		Name:          RouteRegistration,
		Defaults:      defaults,
		Rules:         form.RegistrationRules(),
		OnSuccess:     form.ResetValues,
		SuccessNotice: MsgRegistered,
		ErrorMessage:  api.RegistrationMessage,
		Logger:        p.deps.Logger,
	})
	return p
}

func (p *Registration) Mount(context.Context) error {
	p.form.Reset()
	return nil
}

func (p *Registration) Unmount() {}

func (p *Registration) Err() string { return p.form.Err() }

// Form exposes the form state.
func (p *Registration) Form() *form.Controller { return p.form }

func (p *Registration) Change(field, value string) { p.form.Change(field, value) }

// Fill sets several fields at once.
func (p *Registration) Fill(values map[string]string) {
	for field, value := range values {
		p.form.Change(field, value)
	}
}

// Submit registers the account. The full name field is sent as the name.
func (p *Registration) Submit(ctx context.Context) error {
	err := p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		return p.deps.API.Register(ctx, core.Registration{
			Name:        v[form.FieldFullName],
			Lastname:    v[form.FieldLastname],
			Email:       v[form.FieldEmail],
			Birthday:    v[form.FieldBirthday],
			Country:     v[form.FieldCountry],
			Nationality: v[form.FieldNationality],
			PhoneNumber: v[form.FieldPhoneNumber],
			Occupation:  v[form.FieldOccupation],
			Password:    v[form.FieldPassword],
		})
	})
	if err != nil {
		return err
	}

	delay := p.deps.RedirectDelay
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	p.deps.Nav.NavigateAfter(RouteLogin, delay)
	return nil
}

func (p *Registration) Render(w io.Writer) error {
	s := p.form.State()
	return p.deps.Views.render(w, "registration", struct {
		Header     Header
		Fields     []FieldView
		Err        string
		Notice     string
		Submitting bool
	}{p.header(), fieldViews(registrationFields, s), s.Err, s.Notice, s.Submitting})
}
