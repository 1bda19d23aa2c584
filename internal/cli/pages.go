package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneymaven/internal/core"
	"moneymaven/internal/events"
	"moneymaven/internal/form"
	"moneymaven/internal/pages"
)

// fieldFlag binds a command flag to a form field.
type fieldFlag struct {
	flag, field, usage string
	value              string
}

func bindFields(cmd *cobra.Command, flags []*fieldFlag) {
	for _, f := range flags {
		cmd.Flags().StringVar(&f.value, f.flag, f.value, f.usage)
	}
}

// applyChanged passes the flags the user actually set to change.
func applyChanged(cmd *cobra.Command, flags []*fieldFlag, change func(field, value string)) {
	for _, f := range flags {
		if cmd.Flags().Changed(f.flag) {
			change(f.field, f.value)
		}
	}
}

// viewCommand opens route and prints it.
func (rt *runtime) viewCommand(use, short, route string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, route); err != nil {
				return err
			}
			return rt.finish(ctx, nil)
		},
	}
}

func (rt *runtime) profileCommand() *cobra.Command {
	cmd := rt.viewCommand("profile", "Show the user profile", pages.RouteUserProfile)

	flags := []*fieldFlag{
		{flag: "name", field: form.FieldName, usage: "first name"},
		{flag: "lastname", field: form.FieldLastname, usage: "last name"},
		{flag: "birthday", field: form.FieldBirthday, usage: "birthday (YYYY-MM-DD)"},
		{flag: "country", field: form.FieldCountry, usage: "country of residence"},
		{flag: "nationality", field: form.FieldNationality, usage: "nationality"},
		{flag: "phone", field: form.FieldPhoneNumber, usage: "phone number"},
		{flag: "occupation", field: form.FieldOccupation, usage: "occupation"},
	}
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change profile fields; the e-mail cannot be changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteUserProfile); err != nil {
				return err
			}
			p := rt.app.UserProfile
			if !rt.on(p) || p.Err() != "" {
				return rt.finish(ctx, nil)
			}
			p.Edit()
			applyChanged(cmd, flags, p.Change)
			return rt.finish(ctx, p.Save(ctx))
		},
	}
	bindFields(edit, flags)
	cmd.AddCommand(edit)
	return cmd
}

func (rt *runtime) expensesCommand() *cobra.Command {
	cmd := rt.viewCommand("expenses", "List today's expenses", pages.RouteExpenses)

	flags := []*fieldFlag{
		{flag: "item", field: form.FieldItemName, usage: "item name"},
		{flag: "price", field: form.FieldPrice, usage: "price, greater than zero"},
		{flag: "type", field: form.FieldType, value: string(core.Necessity),
			usage: "expense type: " + core.OneOfTag(core.ExpenseTypes)},
		{flag: "after", field: form.FieldEmotionAfterPurchase, value: string(core.Happy),
			usage: "emotion after purchase: " + core.OneOfTag(core.EmotionsAfterPurchase)},
		{flag: "at", field: form.FieldEmotionAtRegistration, value: string(core.Proud),
			usage: "emotion now: " + core.OneOfTag(core.EmotionsAtRegistration)},
	}
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteExpenses); err != nil {
				return err
			}
			p := rt.app.Expenses
			for _, f := range flags {
				p.Change(f.field, f.value)
			}
			return rt.finish(ctx, p.Submit(ctx))
		},
	}
	bindFields(add, flags)
	cmd.AddCommand(add)
	return cmd
}

func (rt *runtime) financialProfileCommand() *cobra.Command {
	cmd := rt.viewCommand("financial-profile", "Show monthly income and fixed costs", pages.RouteFinancialProfile)

	flags := []*fieldFlag{
		{flag: "monthly-income", field: form.FieldMonthlyIncome, usage: "monthly income"},
		{flag: "rent", field: form.FieldRent, usage: "rent"},
		{flag: "insurance", field: form.FieldInsurance, usage: "insurance"},
		{flag: "transport", field: form.FieldTransport, usage: "transport"},
		{flag: "subscriptions", field: form.FieldSubscriptions, usage: "subscriptions"},
		{flag: "others", field: form.FieldOthers, usage: "other fixed costs"},
	}
	set := &cobra.Command{
		Use:   "set",
		Short: "Update income and costs; unset flags keep their saved value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteFinancialProfile); err != nil {
				return err
			}
			p := rt.app.FinancialProfile
			applyChanged(cmd, flags, p.Change)
			return rt.finish(ctx, p.Submit(ctx))
		},
	}
	bindFields(set, flags)
	cmd.AddCommand(set)
	return cmd
}

func (rt *runtime) goalCommand() *cobra.Command {
	cmd := rt.viewCommand("goal", "Show the savings goal and past months", pages.RouteFinancialGoal)

	var target string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set the monthly savings target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteFinancialGoal); err != nil {
				return err
			}
			p := rt.app.FinancialGoal
			p.Change(form.FieldTargetAmount, target)
			return rt.finish(ctx, p.Submit(ctx))
		},
	}
	set.Flags().StringVar(&target, "target", "", "target amount, greater than zero")
	cmd.AddCommand(set)
	return cmd
}

func (rt *runtime) dashboardCommand() *cobra.Command {
	var (
		month, year int
		watch       bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Chart spending; --watch keeps the impulse split live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteDashboard); err != nil {
				return err
			}
			p := rt.app.Dashboard

			if cmd.Flags().Changed("month") || cmd.Flags().Changed("year") {
				m, y := p.Period()
				if cmd.Flags().Changed("month") {
					m = month
				}
				if cmd.Flags().Changed("year") {
					y = year
				}
				if err := p.SelectPeriod(ctx, m, y); err != nil {
					return err
				}
			}

			if !watch {
				return rt.finish(ctx, nil)
			}

			ticker := time.NewTicker(rt.app.Config.DashboardRefreshInterval)
			defer ticker.Stop()
			for {
				if err := p.Render(rt.opts.Out); err != nil {
					return err
				}
				fmt.Fprintln(rt.opts.Out)
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "month of the daily and weekly charts (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "year of the daily and weekly charts")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-print until interrupted")
	return cmd
}

func (rt *runtime) eventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with expense events on the AMQP broker",
	}
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print expense.recorded events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := rt.app.Events()
			if client == nil {
				return fmt.Errorf("events are disabled: set AMQP_URL")
			}
			err := client.ConsumeExpenseRecorded(cmd.Context(), func(m *events.ExpenseRecordedMessage) error {
				_, err := fmt.Fprintf(rt.opts.Out, "%s  %-24s %10s  %-10s %s\n",
					m.RecordedAt.Format(time.RFC3339), m.ItemName, core.FormatAmount(m.Price), m.Type, m.Date)
				return err
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.AddCommand(tail)
	return cmd
}
