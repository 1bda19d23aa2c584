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
	MsgExpensesLoadFailed = "Failed to load expenses."
	MsgExpenseSubmitFail  = "Failed to submit expense."
)

var expenseFields = []fieldLabel{
	{name: form.FieldItemName, label: "Item name"},
	{name: form.FieldPrice, label: "Price"},
	{name: form.FieldType, label: "Type"},
	{name: form.FieldEmotionAfterPurchase, label: "Emotion after purchase"},
	{name: form.FieldEmotionAtRegistration, label: "Emotion at registration"},
}

// ExpenseDefaults are the values of an empty expense form.
func ExpenseDefaults() map[string]string {
	return map[string]string{
		form.FieldItemName:              "",
		form.FieldPrice:                 "",
		form.FieldType:                  string(core.Necessity),
		form.FieldEmotionAfterPurchase:  string(core.Happy),
		form.FieldEmotionAtRegistration: string(core.Proud),
	}
}

// DailyExpenses lists today's expenses and records new ones.
type DailyExpenses struct {
	base
	form *form.Controller

	mu       sync.Mutex
	expenses []core.Expense
}

func NewDailyExpenses(deps Deps) *DailyExpenses {
	p := &DailyExpenses{base: newBase(deps, RouteExpenses, "Track Daily Expenses")}
	p.form = form.New(form.Options{
		Name:         RouteExpenses,
		Defaults:     ExpenseDefaults(),
		Rules:        form.ExpenseRules(),
		OnSuccess:    form.ResetValues,
		ErrorMessage: func(error) string { return MsgExpenseSubmitFail },
		Logger:       p.deps.Logger,
	})
	return p
}

func (p *DailyExpenses) today() string {
	return core.Today(p.deps.Now())
}

// Mount loads today's expenses when a session exists.
func (p *DailyExpenses) Mount(ctx context.Context) error {
	p.form.Reset()
	if _, ok := p.token(); !ok {
		return nil
	}
	p.Load(ctx)
	return nil
}

func (p *DailyExpenses) Unmount() {}

func (p *DailyExpenses) Err() string { return p.form.Err() }

// Load fetches today's list. On failure the previous list stays on screen.
func (p *DailyExpenses) Load(ctx context.Context) {
	list, err := p.deps.API.Expenses(ctx, p.today())
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to load expenses",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		p.form.SetErr(MsgExpensesLoadFailed)
		return
	}
	p.mu.Lock()
	p.expenses = list
	p.mu.Unlock()
}

// Expenses returns the list last fetched.
func (p *DailyExpenses) Expenses() []core.Expense {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.Expense(nil), p.expenses...)
}

// Form exposes the new-expense form.
func (p *DailyExpenses) Form() *form.Controller { return p.form }

func (p *DailyExpenses) Change(field, value string) { p.form.Change(field, value) }

// Submit records the expense for today, resets the form and reloads the list.
func (p *DailyExpenses) Submit(ctx context.Context) error {
	var sent core.Expense
	err := p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		price, err := core.ParseAmount(v[form.FieldPrice])
		if err != nil {
			return err
		}
		sent = core.Expense{
			ItemName:              v[form.FieldItemName],
			Price:                 price,
			Type:                  core.ExpenseType(v[form.FieldType]),
			EmotionAfterPurchase:  core.EmotionAfterPurchase(v[form.FieldEmotionAfterPurchase]),
			EmotionAtRegistration: core.EmotionAtRegistration(v[form.FieldEmotionAtRegistration]),
			Date:                  p.today(),
		}
		return p.deps.API.AddExpense(ctx, sent)
	})
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "Expense recorded",
		log.NewFields().WithOperation(log.OpSubmit).WithExpense(sent.ItemName, sent.Price, sent.Date).ToSlice()...)
	if err := p.deps.Events.PublishExpenseRecorded(ctx, sent); err != nil {
		p.logger.WarnContext(ctx, "Failed to publish expense event",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).ToSlice()...)
	}

	p.Load(ctx)
	return nil
}

func (p *DailyExpenses) Render(w io.Writer) error {
	s := p.form.State()
	list := p.Expenses()
	var total float64
	for _, e := range list {
		total += e.Price
	}
	return p.deps.Views.render(w, "expenses", struct {
		Header     Header
		Date       string
		Expenses   []core.Expense
		Total      float64
		Fields     []FieldView
		Err        string
		Notice     string
		Submitting bool
	}{p.header(), p.today(), list, total, fieldViews(expenseFields, s), s.Err, s.Notice, s.Submitting})
}
