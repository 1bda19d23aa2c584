// Package pages holds one controller per screen of the client. A page loads
// its data when mounted, exposes the user's actions as methods and renders
// its current state as text.
package pages

import (
	"context"
	"io"
	"time"

	"moneymaven/internal/core"
	"moneymaven/internal/events"
	"moneymaven/internal/log"
	"moneymaven/internal/session"
)

// Client routes.
const (
	RouteHome             = "/"
	RouteLogin            = "/login"
	RouteRegistration     = "/registration"
	RouteUserProfile      = "/user-profile"
	RouteExpenses         = "/expenses"
	RouteDashboard        = "/dashboard"
	RouteFinancialProfile = "/financial-profile"
	RouteFinancialGoal    = "/financial-goal"
)

// Page is one screen.
type Page interface {
	Route() string
	Title() string
	// Mount loads the page's data. It may request navigation.
	Mount(ctx context.Context) error
	// Unmount releases whatever Mount started.
	Unmount()
	Render(w io.Writer) error
	// Err is the page-level error currently shown, if any.
	Err() string
}

// Navigator applies route changes requested by pages once the current action
// has returned.
type Navigator interface {
	Navigate(route string)
	NavigateAfter(route string, delay time.Duration)
}

// API is the part of the MoneyMaven API the pages use.
type API interface {
	Login(ctx context.Context, creds core.Credentials) (core.LoginResult, error)
	Register(ctx context.Context, reg core.Registration) error
	UserProfile(ctx context.Context) (core.UserProfile, error)
	UpdateProfile(ctx context.Context, p core.UserProfile) error
	Expenses(ctx context.Context, date string) ([]core.Expense, error)
	AddExpense(ctx context.Context, e core.Expense) error
	FinancialProfile(ctx context.Context) (core.FinancialProfile, error)
	UpdateFinancialProfile(ctx context.Context, p core.FinancialProfile) error
	FinancialGoal(ctx context.Context) (core.FinancialGoal, error)
	SetFinancialGoal(ctx context.Context, target float64) error
	GoalHistory(ctx context.Context) ([]core.GoalHistoryEntry, error)
	MonthlyExpenses(ctx context.Context) (core.Series, error)
	ImpulseVsNecessity(ctx context.Context) (core.Series, error)
	DailyExpenses(ctx context.Context, month, year int) (core.Series, error)
	WeeklyExpenses(ctx context.Context, month, year int) (core.Series, error)
}

// Deps is what every page needs.
type Deps struct {
	API     API
	Session *session.Provider
	Nav     Navigator
	Views   *Renderer
	Events  events.Publisher
	Logger  *log.Logger
	Now     func() time.Time

	RefreshInterval time.Duration
	RedirectDelay   time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.Discard()
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// base carries the pieces shared by every page.
type base struct {
	deps   Deps
	route  string
	title  string
	logger *log.Logger
}

func newBase(deps Deps, route, title string) base {
	deps = deps.withDefaults()
	return base{
		deps:   deps,
		route:  route,
		title:  title,
		logger: deps.Logger.WithComponent(log.ComponentPage).With(log.FieldPage, route),
	}
}

func (b *base) Route() string { return b.route }

func (b *base) Title() string { return b.title }

func (b *base) token() (string, bool) {
	return b.deps.Session.Token()
}

func (b *base) header() Header {
	loggedIn := b.deps.Session.LoggedIn()
	return Header{
		Title:    b.title,
		LoggedIn: loggedIn,
		Subject:  b.deps.Session.Subject(),
		Links:    session.NavLinks(loggedIn),
	}
}

func (b *base) navigate(route string) {
	b.logger.Debug("Navigation requested", log.FieldOperation, log.OpNavigate, log.FieldRoute, route)
	b.deps.Nav.Navigate(route)
}
