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
	MsgGoalLoadFailed = "Could not load financial goal info."
	MsgGoalSaved      = "Goal saved successfully!"
	MsgGoalSaveFailed = "Failed to save goal."
)

var goalFields = []fieldLabel{
	{name: form.FieldTargetAmount, label: "Target amount"},
}

// FinancialGoal shows progress towards the monthly savings target and past months.
type FinancialGoal struct {
	base
	form *form.Controller

	mu       sync.Mutex
	goal     core.FinancialGoal
	progress string
	history  []core.GoalHistoryEntry
}

func NewFinancialGoal(deps Deps) *FinancialGoal {
	p := &FinancialGoal{base: newBase(deps, RouteFinancialGoal, "Financial Goal")}
	p.form = form.New(form.Options{
		Name:          RouteFinancialGoal,
		Defaults:      map[string]string{form.FieldTargetAmount: ""},
		Rules:         form.GoalRules(),
		OnSuccess:     form.KeepValues,
		SuccessNotice: MsgGoalSaved,
		ErrorMessage:  func(error) string { return MsgGoalSaveFailed },
		Logger:        p.deps.Logger,
	})
	return p
}

// Mount loads the goal, then the history. A history failure is only logged.
func (p *FinancialGoal) Mount(ctx context.Context) error {
	p.form.Reset()
	p.mu.Lock()
	p.goal = core.FinancialGoal{}
	p.progress = ""
	p.history = nil
	p.mu.Unlock()

	goal, err := p.deps.API.FinancialGoal(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to load financial goal",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		p.form.SetErr(MsgGoalLoadFailed)
	} else {
		p.mu.Lock()
		p.goal = goal
		p.progress = core.ProgressMessage(goal.TargetAmount, goal.AvailableAmount)
		p.mu.Unlock()
		p.form.Load(map[string]string{form.FieldTargetAmount: core.AmountField(goal.TargetAmount)})
	}

	history, err := p.deps.API.GoalHistory(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to load goal history",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		return nil
	}
	p.mu.Lock()
	p.history = history
	p.mu.Unlock()
	return nil
}

func (p *FinancialGoal) Unmount() {}

func (p *FinancialGoal) Err() string { return p.form.Err() }

// Goal returns the goal last loaded.
func (p *FinancialGoal) Goal() core.FinancialGoal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.goal
}

// Progress returns the message describing how close the goal is.
func (p *FinancialGoal) Progress() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// History returns the past months.
func (p *FinancialGoal) History() []core.GoalHistoryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.GoalHistoryEntry(nil), p.history...)
}

// Form exposes the form state.
func (p *FinancialGoal) Form() *form.Controller { return p.form }

func (p *FinancialGoal) Change(field, value string) { p.form.Change(field, value) }

// Submit saves a new target. The progress message gives way to the result.
func (p *FinancialGoal) Submit(ctx context.Context) error {
	p.mu.Lock()
	p.progress = ""
	p.mu.Unlock()

	return p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		target, err := core.ParseAmount(v[form.FieldTargetAmount])
		if err != nil {
			return err
		}
		return p.deps.API.SetFinancialGoal(ctx, target)
	})
}

func (p *FinancialGoal) Render(w io.Writer) error {
	s := p.form.State()
	p.mu.Lock()
	goal, progress := p.goal, p.progress
	history := append([]core.GoalHistoryEntry(nil), p.history...)
	p.mu.Unlock()

	target, _ := core.ParseAmount(s.Values[form.FieldTargetAmount])
	return p.deps.Views.render(w, "financial_goal", struct {
		Header      Header
		Target      float64
		Available   float64
		GoalReached bool
		Progress    string
		History     []core.GoalHistoryEntry
		Fields      []FieldView
		Err         string
		Notice      string
		Submitting  bool
	}{p.header(), target, goal.AvailableAmount, goal.GoalReached, progress, history, fieldViews(goalFields, s), s.Err, s.Notice, s.Submitting})
}
