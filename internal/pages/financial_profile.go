package pages

import (
	"context"
	"io"

	"moneymaven/internal/core"
	"moneymaven/internal/form"
	"moneymaven/internal/log"
)

const (
	MsgFinancialLoadFailed   = "Could not load financial profile."
	MsgFinancialUpdateFailed = "Failed to update financial data."
)

var financialFields = []fieldLabel{
	{name: form.FieldMonthlyIncome, label: "Monthly income"},
	{name: form.FieldRent, label: "Rent"},
	{name: form.FieldInsurance, label: "Insurance"},
	{name: form.FieldTransport, label: "Transport"},
	{name: form.FieldSubscriptions, label: "Subscriptions"},
	{name: form.FieldOthers, label: "Others"},
}

// FinancialProfile edits monthly income and fixed costs.
type FinancialProfile struct {
	base
	form *form.Controller
}

func NewFinancialProfile(deps Deps) *FinancialProfile {
	p := &FinancialProfile{base: newBase(deps, RouteFinancialProfile, "Financial Profile")}
	defaults := make(map[string]string, len(form.FinancialProfileFields))
	for _, f := range form.FinancialProfileFields {
		defaults[f] = ""
	}
	p.form = form.New(form.Options{
		Name:                  RouteFinancialProfile,
		Defaults:              defaults,
		Rules:                 form.FinancialProfileRules(),
		OnSuccess:             form.KeepValues,
		SuccessNotice:         MsgProfileUpdated,
		ErrorMessage:          func(error) string { return MsgFinancialUpdateFailed },
		ClearMessagesOnChange: true,
		Logger:                p.deps.Logger,
	})
	return p
}

// Mount loads the saved profile. Amounts of zero show as empty fields.
func (p *FinancialProfile) Mount(ctx context.Context) error {
	p.form.Reset()
	fp, err := p.deps.API.FinancialProfile(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to load financial profile",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		p.form.SetErr(MsgFinancialLoadFailed)
		return nil
	}
	p.form.Load(map[string]string{
		form.FieldMonthlyIncome: core.AmountField(fp.MonthlyIncome),
		form.FieldRent:          core.AmountField(fp.Rent),
		form.FieldInsurance:     core.AmountField(fp.Insurance),
		form.FieldTransport:     core.AmountField(fp.Transport),
		form.FieldSubscriptions: core.AmountField(fp.Subscriptions),
		form.FieldOthers:        core.AmountField(fp.Others),
	})
	return nil
}

func (p *FinancialProfile) Unmount() {}

func (p *FinancialProfile) Err() string { return p.form.Err() }

// Form exposes the form state.
func (p *FinancialProfile) Form() *form.Controller { return p.form }

func (p *FinancialProfile) Change(field, value string) { p.form.Change(field, value) }

// Submit saves the profile. The values stay in the form.
func (p *FinancialProfile) Submit(ctx context.Context) error {
	return p.form.Submit(ctx, func(ctx context.Context, v map[string]string) error {
		return p.deps.API.UpdateFinancialProfile(ctx, financialProfileOf(v))
	})
}

// financialProfileOf reads amounts that have already passed validation.
func financialProfileOf(v map[string]string) core.FinancialProfile {
	amount := func(field string) float64 {
		a, _ := core.ParseAmount(v[field])
		return a
	}
	return core.FinancialProfile{
		MonthlyIncome: amount(form.FieldMonthlyIncome),
		Rent:          amount(form.FieldRent),
		Insurance:     amount(form.FieldInsurance),
		Transport:     amount(form.FieldTransport),
		Subscriptions: amount(form.FieldSubscriptions),
		Others:        amount(form.FieldOthers),
	}
}

func (p *FinancialProfile) Render(w io.Writer) error {
	s := p.form.State()
	fp := financialProfileOf(s.Values)
	return p.deps.Views.render(w, "financial_profile", struct {
		Header     Header
		Fields     []FieldView
		FixedCosts float64
		Remaining  float64
		Err        string
		Notice     string
		Submitting bool
	}{p.header(), fieldViews(financialFields, s), fp.FixedCosts(), fp.MonthlyIncome - fp.FixedCosts(), s.Err, s.Notice, s.Submitting})
}
