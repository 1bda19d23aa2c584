package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"moneymaven/internal/config"
	"moneymaven/internal/log"
	"moneymaven/internal/pages"
)

// ErrActionFailed reports that the last action ended in an error the
// rendered page already shows.
var ErrActionFailed = errors.New("action failed")

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = "moneymaven.yaml"

// Options configures a command tree.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Config replaces loading from file, .env and environment when set.
	Config *config.Config
	// Logger replaces the logger built from Config when set.
	Logger *log.Logger
	App    AppOptions
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	return o
}

type runtime struct {
	opts    Options
	cfgPath string
	app     *App
	prompt  *Prompter
	stop    context.CancelFunc
}

// Execute runs the command line in args and releases the client afterwards.
func Execute(ctx context.Context, opts Options, args []string) error {
	rt := &runtime{opts: opts.withDefaults()}
	rt.prompt = NewPrompter(rt.opts.In, rt.opts.Err)

	root := rt.rootCommand()
	root.SetArgs(args)
	root.SetIn(rt.opts.In)
	root.SetOut(rt.opts.Out)
	root.SetErr(rt.opts.Err)

	err := root.ExecuteContext(ctx)
	if rt.stop != nil {
		rt.stop()
	}
	if rt.app != nil {
		rt.app.Close()
	}
	return err
}

func (rt *runtime) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "moneymaven",
		Short:         "Terminal client for the MoneyMaven personal finance API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.setup(cmd.Context()); err != nil {
				return err
			}
			ctx, stop := NotifyShutdown(cmd.Context(), rt.app.Logger, rt.app.Router.Close)
			rt.stop = stop
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&rt.cfgPath, "config", DefaultConfigFile, "path to a YAML config file")

	root.AddCommand(
		rt.loginCommand(),
		rt.registerCommand(),
		rt.logoutCommand(),
		rt.statusCommand(),
		rt.routesCommand(),
		rt.openCommand(),
		rt.profileCommand(),
		rt.expensesCommand(),
		rt.financialProfileCommand(),
		rt.goalCommand(),
		rt.dashboardCommand(),
		rt.eventsCommand(),
	)
	return root
}

func (rt *runtime) setup(ctx context.Context) error {
	cfg := rt.opts.Config
	if cfg == nil {
		LoadEnvFile()
		loaded, err := LoadAndValidateConfig(rt.cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := rt.opts.Logger
	if logger == nil {
		logger = SetupLogger(cfg, rt.opts.Err)
	}

	app, err := NewApp(ctx, cfg, logger, rt.opts.App)
	if err != nil {
		return err
	}
	rt.app = app
	return nil
}

// open mounts route and follows the redirects its page asks for.
func (rt *runtime) open(ctx context.Context, route string) error {
	return rt.app.Router.Open(ctx, route)
}

// on reports whether page is the one mounted, i.e. no redirect happened.
func (rt *runtime) on(page pages.Page) bool {
	return rt.app.Router.Current() == page
}

// finish applies pending navigation, prints the resulting page and turns a
// failed action into ErrActionFailed.
func (rt *runtime) finish(ctx context.Context, actionErr error) error {
	settleErr := rt.app.Router.Settle(ctx)

	failed := actionErr != nil
	if flash := rt.app.Router.Flash(); flash != "" {
		fmt.Fprintln(rt.opts.Err, flash)
		failed = true
	}
	if page := rt.app.Router.Current(); page != nil {
		if err := page.Render(rt.opts.Out); err != nil {
			return err
		}
		if page.Err() != "" {
			failed = true
		}
	}

	if settleErr != nil {
		return settleErr
	}
	if failed {
		if actionErr != nil {
			rt.app.Logger.DebugContext(ctx, "Action failed", log.FieldError, actionErr)
		}
		return ErrActionFailed
	}
	return nil
}

// valueOrPrompt returns the flag value, asking for it when it was left empty.
func (rt *runtime) valueOrPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return rt.prompt.Line(label)
}

func (rt *runtime) secretOrPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return rt.prompt.Secret(label)
}
