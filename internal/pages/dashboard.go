package pages

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"moneymaven/internal/core"
	"moneymaven/internal/log"
	"moneymaven/internal/refresh"
)

// MsgDashboardLoadFailed is shown when the initial load fails.
const MsgDashboardLoadFailed = "Could not load dashboard data."

// Dashboard charts spending. While mounted it re-polls the impulse versus
// necessity split on a fixed interval.
type Dashboard struct {
	base
	task *refresh.Task

	mu      sync.Mutex
	month   int
	year    int
	monthly core.Series
	impulse core.Series
	daily   core.Series
	weekly  core.Series
	err     string
}

func NewDashboard(deps Deps) *Dashboard {
	p := &Dashboard{base: newBase(deps, RouteDashboard, "Dashboard")}
	interval := p.deps.RefreshInterval
	if interval <= 0 {
		interval = refresh.DefaultInterval
	}
	p.task = refresh.New(p.refreshImpulse, refresh.Config{
		Name:     "dashboard-impulse",
		Interval: interval,
		Logger:   p.deps.Logger,
	})
	now := p.deps.Now()
	p.month, p.year = int(now.Month()), now.Year()
	return p
}

// Mount loads every series and starts the live refresh. Without a session it
// does nothing.
func (p *Dashboard) Mount(ctx context.Context) error {
	p.mu.Lock()
	p.err = ""
	p.mu.Unlock()

	if _, ok := p.token(); !ok {
		return nil
	}

	p.loadAll(ctx)

	if err := p.task.Start(context.WithoutCancel(ctx)); err != nil {
		p.logger.WarnContext(ctx, "Live refresh not started", log.FieldError, err)
	}
	return nil
}

// Unmount stops the live refresh and waits for it to finish.
func (p *Dashboard) Unmount() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.task.Stop(ctx); err != nil {
		p.logger.Warn("Live refresh did not stop cleanly", log.FieldError, err)
	}
}

// Live reports whether the refresh loop is running.
func (p *Dashboard) Live() bool {
	return p.task.IsRunning()
}

func (p *Dashboard) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Period returns the month and year the month-scoped series cover.
func (p *Dashboard) Period() (month, year int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.month, p.year
}

// SelectPeriod switches month and year and reloads the month-scoped series.
func (p *Dashboard) SelectPeriod(ctx context.Context, month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}
	if year < 1 {
		return fmt.Errorf("invalid year %d", year)
	}

	p.mu.Lock()
	p.month, p.year = month, year
	p.err = ""
	p.mu.Unlock()

	if _, ok := p.token(); !ok {
		return nil
	}

	var daily, weekly core.Series
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		daily, err = p.deps.API.DailyExpenses(gctx, month, year)
		return err
	})
	g.Go(func() (err error) {
		weekly, err = p.deps.API.WeeklyExpenses(gctx, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		p.loadFailed(ctx, err)
		return nil
	}

	p.mu.Lock()
	p.daily, p.weekly = daily, weekly
	p.mu.Unlock()
	p.logger.DebugContext(ctx, "Dashboard period changed", log.FieldMonth, month, log.FieldYear, year)
	return nil
}

func (p *Dashboard) loadAll(ctx context.Context) {
	month, year := p.Period()

	var monthly, impulse, daily, weekly core.Series
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthly, err = p.deps.API.MonthlyExpenses(gctx)
		return err
	})
	g.Go(func() (err error) {
		impulse, err = p.deps.API.ImpulseVsNecessity(gctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = p.deps.API.DailyExpenses(gctx, month, year)
		return err
	})
	g.Go(func() (err error) {
		weekly, err = p.deps.API.WeeklyExpenses(gctx, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		p.loadFailed(ctx, err)
		return
	}

	p.mu.Lock()
	p.monthly, p.impulse, p.daily, p.weekly = monthly, impulse, daily, weekly
	p.mu.Unlock()
}

func (p *Dashboard) loadFailed(ctx context.Context, err error) {
	p.logger.WarnContext(ctx, "Failed to load dashboard data",
		log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
	p.mu.Lock()
	p.err = MsgDashboardLoadFailed
	p.mu.Unlock()
}

func (p *Dashboard) refreshImpulse(ctx context.Context) error {
	impulse, err := p.deps.API.ImpulseVsNecessity(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.impulse = impulse
	p.mu.Unlock()
	return nil
}

// Monthly returns spending per month in server order.
func (p *Dashboard) Monthly() core.Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.monthly
}

// Impulse returns the impulse versus necessity split in server order.
func (p *Dashboard) Impulse() core.Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.impulse
}

// Daily returns spending per day, oldest first.
func (p *Dashboard) Daily() core.Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.daily.SortedByDate()
}

// Weekly returns spending per week, labelled "Week N" in week order.
func (p *Dashboard) Weekly() core.Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weekly.Weeks()
}

func (p *Dashboard) Render(w io.Writer) error {
	month, year := p.Period()
	return p.deps.Views.render(w, "dashboard", struct {
		Header   Header
		Month    int
		Year     int
		Live     bool
		Interval time.Duration
		Monthly  SeriesView
		Impulse  SeriesView
		Daily    SeriesView
		Weekly   SeriesView
		Err      string
		Notice   string
	}{
		Header:   p.header(),
		Month:    month,
		Year:     year,
		Live:     p.Live(),
		Interval: p.task.Interval(),
		Monthly:  SeriesView{p.Monthly()},
		Impulse:  SeriesView{p.Impulse()},
		Daily:    SeriesView{p.Daily()},
		Weekly:   SeriesView{p.Weekly()},
		Err:      p.Err(),
	})
}
