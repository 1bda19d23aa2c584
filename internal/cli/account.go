package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneymaven/internal/form"
	"moneymaven/internal/pages"
)

func (rt *runtime) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteLogin); err != nil {
				return err
			}
			e, err := rt.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			pw, err := rt.secretOrPrompt(password, "Password")
			if err != nil {
				return err
			}

			rt.app.Login.Change(form.FieldEmail, e)
			rt.app.Login.Change(form.FieldPassword, pw)
			return rt.finish(ctx, rt.app.Login.Submit(ctx))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted without echo when empty)")
	return cmd
}

// registrationFlags maps flags to registration form fields in prompt order.
var registrationFlags = []struct {
	flag, field, label string
}{
	{"full-name", form.FieldFullName, "Full name"},
	{"lastname", form.FieldLastname, "Lastname"},
	{"email", form.FieldEmail, "Email"},
	{"birthday", form.FieldBirthday, "Birthday (YYYY-MM-DD)"},
	{"country", form.FieldCountry, "Country of residence"},
	{"nationality", form.FieldNationality, "Nationality"},
	{"phone", form.FieldPhoneNumber, "Phone number"},
	{"occupation", form.FieldOccupation, "Occupation"},
}

func (rt *runtime) registerCommand() *cobra.Command {
	values := make([]string, len(registrationFlags))
	var password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, then continue to the login page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, pages.RouteRegistration); err != nil {
				return err
			}

			fill := make(map[string]string, len(registrationFlags)+2)
			for i, f := range registrationFlags {
				v, err := rt.valueOrPrompt(values[i], f.label)
				if err != nil {
					return err
				}
				fill[f.field] = v
			}
			var err error
			if fill[form.FieldPassword], err = rt.secretOrPrompt(password, "Password"); err != nil {
				return err
			}
			if fill[form.FieldConfirmPassword], err = rt.secretOrPrompt(confirm, "Confirm password"); err != nil {
				return err
			}

			rt.app.Registration.Fill(fill)
			return rt.finish(ctx, rt.app.Registration.Submit(ctx))
		},
	}
	for i, f := range registrationFlags {
		cmd.Flags().StringVar(&values[i], f.flag, "", f.label)
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted without echo when empty)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation (prompted without echo when empty)")
	return cmd
}

func (rt *runtime) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return rt.finish(ctx, rt.app.UserProfile.Logout(ctx))
		},
	}
}

func (rt *runtime) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and configuration in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := rt.opts.Out
			switch {
			case !rt.app.Session.LoggedIn():
				fmt.Fprintln(out, "Not logged in")
			case rt.app.Session.Subject() != "":
				fmt.Fprintf(out, "Logged in as %s\n", rt.app.Session.Subject())
			default:
				fmt.Fprintln(out, "Logged in")
			}
			fmt.Fprintf(out, "API:   %s\n", rt.app.API.BaseURL())
			fmt.Fprintf(out, "State: %s\n", rt.app.Config.StateBackend)
			if rt.app.Events() != nil {
				fmt.Fprintf(out, "Events: %s -> %s\n", rt.app.Config.AMQPExchange, rt.app.Config.AMQPQueue)
			}
			return nil
		},
	}
}

func (rt *runtime) routesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the pages that can be opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, route := range rt.app.Router.Routes() {
				page, err := rt.app.Router.Page(route)
				if err != nil {
					return err
				}
				fmt.Fprintf(rt.opts.Out, "%-20s %s\n", route, page.Title())
			}
			return nil
		},
	}
}

func (rt *runtime) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Open a page by route and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := rt.open(ctx, args[0]); err != nil {
				return err
			}
			return rt.finish(ctx, nil)
		},
	}
}
