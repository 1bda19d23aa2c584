package cli

import (
	"context"
	"net/http"
	"time"

	"moneymaven/internal/api"
	"moneymaven/internal/backend"
	"moneymaven/internal/config"
	"moneymaven/internal/events"
	"moneymaven/internal/log"
	"moneymaven/internal/pages"
	"moneymaven/internal/router"
	"moneymaven/internal/session"
)

// App is the wired client: storage, session, API, pages and router.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Session *session.Provider
	API     *api.Client
	Router  *router.Router

	Home             *pages.Home
	Login            *pages.Login
	Registration     *pages.Registration
	UserProfile      *pages.UserProfile
	Expenses         *pages.DailyExpenses
	FinancialProfile *pages.FinancialProfile
	FinancialGoal    *pages.FinancialGoal
	Dashboard        *pages.Dashboard

	events       events.Publisher
	eventsClient *events.Client
	cleanup      backend.CleanupFunc
	unsubscribe  func()
}

// AppOptions overrides collaborators, mostly for tests.
type AppOptions struct {
	Factory    backend.Factory
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewApp opens the state store, restores the session and registers every page.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger, opts AppOptions) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}

	factory := opts.Factory
	if factory == nil {
		factory = backend.NewFactory(logger)
	}
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, wrapf(err, "open state backend %s", backendCfg.Type)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		cleanup: res.Cleanup,
		events:  events.Nop{},
	}

	a.Session = session.NewProvider(res.Store, logger)
	if err := a.Session.Init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.unsubscribe = a.Session.Subscribe(func(loggedIn bool) {
		logger.Debug("Session changed", log.FieldLoggedIn, loggedIn)
	})

	a.API = api.NewClient(api.Config{
		BaseURL:    cfg.APIBaseURL,
		Tokens:     a.Session,
		Logger:     logger,
		HTTPClient: opts.HTTPClient,
	})

	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("Event publishing disabled", log.FieldError, err)
		} else {
			a.eventsClient = client
			a.events = client
		}
	}

	views, err := pages.NewRenderer()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Router = router.New(logger)
	deps := pages.Deps{
		API:             a.API,
		Session:         a.Session,
		Nav:             a.Router,
		Views:           views,
		Events:          a.events,
		Logger:          logger,
		Now:             opts.Now,
		RefreshInterval: cfg.DashboardRefreshInterval,
		RedirectDelay:   cfg.RegistrationRedirectDelay,
	}

	a.Home = pages.NewHome(deps)
	a.Login = pages.NewLogin(deps)
	a.Registration = pages.NewRegistration(deps)
	a.UserProfile = pages.NewUserProfile(deps)
	a.Expenses = pages.NewDailyExpenses(deps)
	a.FinancialProfile = pages.NewFinancialProfile(deps)
	a.FinancialGoal = pages.NewFinancialGoal(deps)
	a.Dashboard = pages.NewDashboard(deps)
	a.Router.Register(a.Home, a.Login, a.Registration, a.UserProfile,
		a.Expenses, a.FinancialProfile, a.FinancialGoal, a.Dashboard)

	logger.Debug("Client ready", log.FieldBackend, string(backendCfg.Type), log.FieldLoggedIn, a.Session.LoggedIn())
	return a, nil
}

// Events returns the AMQP client, or nil when publishing is disabled.
func (a *App) Events() *events.Client {
	return a.eventsClient
}

// Close unmounts the current page and releases every resource.
func (a *App) Close() {
	if a.Router != nil {
		a.Router.Close()
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.Session != nil {
		a.Session.Close()
	}
	if err := a.events.Close(); err != nil {
		a.Logger.Warn("Failed to close event publisher", log.FieldError, err)
	}
	a.events = events.Nop{}
	if a.cleanup != nil {
		if err := a.cleanup(); err != nil {
			a.Logger.Warn("Failed to close state backend", log.FieldError, err)
		}
		a.cleanup = nil
	}
}
