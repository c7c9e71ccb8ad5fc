package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"transitpay/internal/app"
	"transitpay/internal/clients"
	"transitpay/internal/config"
	"transitpay/internal/session"
	"transitpay/libs/logging"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "transitctl"
)

// cli carries global flags and the lazily built application for one invocation.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	prompt *prompter

	configPath string
	apiURL     string
	logLevel   string
	noColor    bool

	app    *app.App
	logger *zap.Logger
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, prompt: newPrompter(stdin, stderr)}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", describe(err))
		return 1
	}
	return 0
}

func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return "not logged in, run `transitctl login` first"
	case errors.Is(err, clients.ErrSessionExpired):
		return err.Error() + " (`transitctl login`)"
	}
	return err.Error()
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Transit card payments from the terminal",
		Long:          "transitctl manages a transit payment account: cards, balance, tap-in/tap-out journeys and transaction history.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML); defaults to $TRANSIT_CONFIG")
	flags.StringVar(&c.apiURL, "api-url", "", "Backend base URL, e.g. http://localhost:8080/api")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable coloured output")

	cmd.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.dashboardCmd(),
		c.topUpCmd(),
		c.tapInCmd(),
		c.tapOutCmd(),
		c.cardsCmd(),
		c.journeysCmd(),
		c.transactionsCmd(),
		c.profileCmd(),
		c.stationsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

// application loads configuration and builds the app on first use.
func (c *cli) application(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	logger, err := logging.NewLogger(logging.Options{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return nil, err
	}
	c.logger = logger

	a, err := app.New(ctx, cfg, logger, c.stdout,
		app.WithNoticeWriter(c.stderr),
		app.WithColor(c.colorEnabled()),
	)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) colorEnabled() bool {
	if c.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := c.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync() // best-effort flush
	}
}
