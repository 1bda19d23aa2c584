package pages

import (
	"context"
	"io"
	"sync"

	"moneymaven/internal/core"
	"moneymaven/internal/form"
	"moneymaven/internal/log"
)

const (
	MsgNotLoggedIn        = "User is not logged in."
	MsgProfileFetchFailed = "Failed to fetch user data."
	MsgProfileUpdated     = "Profile updated successfully!"
	MsgProfileUpdateFail  = "Failed to update profile. Please try again."
)

var profileFields = []fieldLabel{
	{name: form.FieldName, label: "Name"},
	{name: form.FieldLastname, label: "Lastname"},
	{name: form.FieldEmail, label: "Email"},
	{name: form.FieldBirthday, label: "Birthday"},
	{name: form.FieldCountry, label: "Country of residence"},
	{name: form.FieldNationality, label: "Nationality"},
	{name: form.FieldPhoneNumber, label: "Phone number"},
	{name: form.FieldOccupation, label: "Occupation"},
}

// UserProfile shows the signed-in user's details and lets them edit them.
type UserProfile struct {
	base
	form *form.Controller

	mu       sync.Mutex
	profile  core.UserProfile
	editMode bool
}

func NewUserProfile(deps Deps) *UserProfile {
	p := &UserProfile{base: newBase(deps, RouteUserProfile, "User Profile")}
	p.form = form.New(form.Options{
		Name:          RouteUserProfile,
		Rules:         form.ProfileRules(),
		OnSuccess:     form.KeepValues,
		SuccessNotice: MsgProfileUpdated,
		ErrorMessage:  func(error) string { return MsgProfileUpdateFail },
		Logger:        p.deps.Logger,
	})
	return p
}

// Mount fetches the profile. Without a token, or when the fetch fails, the
// user is sent home; a failed fetch also ends the session.
func (p *UserProfile) Mount(ctx context.Context) error {
	p.form.Reset()
	p.mu.Lock()
	p.editMode = false
	p.profile = core.UserProfile{}
	p.mu.Unlock()

	if _, ok := p.token(); !ok {
		p.form.SetErr(MsgNotLoggedIn)
		p.navigate(RouteHome)
		return nil
	}

	profile, err := p.deps.API.UserProfile(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Profile fetch failed, ending session",
			log.NewFields().WithOperation(log.OpLoad).WithErrorType(log.ErrorTypeAuth).WithError(err).ToSlice()...)
		p.form.SetErr(MsgProfileFetchFailed)
		if err := p.deps.Session.ClearToken(ctx); err != nil {
			p.logger.ErrorContext(ctx, "Failed to clear session token", log.FieldError, err)
		}
		p.navigate(RouteHome)
		return nil
	}

	p.mu.Lock()
	p.profile = profile
	p.mu.Unlock()
	p.form.Load(profileValues(profile))
	return nil
}

func (p *UserProfile) Unmount() {}

func (p *UserProfile) Err() string { return p.form.Err() }

// Profile returns the last profile confirmed by the server.
func (p *UserProfile) Profile() core.UserProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// EditMode reports whether the edit form is showing.
func (p *UserProfile) EditMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editMode
}

// Form exposes the edit form.
func (p *UserProfile) Form() *form.Controller { return p.form }

// Edit opens the edit form filled with the current profile.
func (p *UserProfile) Edit() {
	p.mu.Lock()
	p.editMode = true
	profile := p.profile
	p.mu.Unlock()
	p.form.Load(profileValues(profile))
	p.form.SetNotice("")
}

// Cancel leaves edit mode and discards unsaved changes.
func (p *UserProfile) Cancel() {
	p.mu.Lock()
	p.editMode = false
	profile := p.profile
	p.mu.Unlock()
	p.form.Reset()
	p.form.Load(profileValues(profile))
}

// Change edits one field. The e-mail cannot be changed.
func (p *UserProfile) Change(field, value string) {
	if field == form.FieldEmail {
		return
	}
	p.form.Change(field, value)
}

// Save sends the edited profile and leaves edit mode on success.
func (p *UserProfile) Save(ctx context.Context) error {
	var saved core.UserProfile
	err := p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		p.mu.Lock()
		email := p.profile.Email
		p.mu.Unlock()

		saved = core.UserProfile{
			Name:        v[form.FieldName],
			Lastname:    v[form.FieldLastname],
			Email:       email,
			Birthday:    v[form.FieldBirthday],
			Country:     v[form.FieldCountry],
			Nationality: v[form.FieldNationality],
			PhoneNumber: v[form.FieldPhoneNumber],
			Occupation:  v[form.FieldOccupation],
		}
		return p.deps.API.UpdateProfile(ctx, saved)
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.profile = saved
	p.editMode = false
	p.mu.Unlock()
	return nil
}

// Logout ends the session and goes home.
func (p *UserProfile) Logout(ctx context.Context) error {
	err := p.deps.Session.ClearToken(ctx)
	p.navigate(RouteHome)
	return err
}

func profileValues(u core.UserProfile) map[string]string {
	return map[string]string{
		form.FieldName:        u.Name,
		form.FieldLastname:    u.Lastname,
		form.FieldEmail:       u.Email,
		form.FieldBirthday:    u.Birthday,
		form.FieldCountry:     u.Country,
		form.FieldNationality: u.Nationality,
		form.FieldPhoneNumber: u.PhoneNumber,
		form.FieldOccupation:  u.Occupation,
	}
}

func (p *UserProfile) Render(w io.Writer) error {
	s := p.form.State()
	editMode := p.EditMode()
	if !editMode {
		s.Values = profileValues(p.Profile())
		for _, f := range []string{form.FieldBirthday, form.FieldCountry, form.FieldNationality, form.FieldPhoneNumber, form.FieldOccupation} {
			if s.Values[f] == "" {
				s.Values[f] = "Not set"
			}
		}
		s.Errors = nil
	}
	return p.deps.Views.render(w, "user_profile", struct {
		Header     Header
		Fields     []FieldView
		EditMode   bool
		Err        string
		Notice     string
		Submitting bool
	}{p.header(), fieldViews(profileFields, s), editMode, s.Err, s.Notice, s.Submitting})
}
