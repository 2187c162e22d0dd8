package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/schoolgest-client/apierror"
	"github.com/jrsteele09/schoolgest-client/app"
	"github.com/jrsteele09/schoolgest-client/internal/config"
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/jrsteele09/schoolgest-client/token/filestore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// reportedError has already been shown to the user through the notifier
type reportedError struct {
	message string
}

func (e *reportedError) Error() string {
	return e.message
}

type cli struct {
	configPath string
	banner     bool
	logger     zerolog.Logger
	app        *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "schoolgest",
		Short: "Command line client for the SchoolGest backend",
		Long: `schoolgest talks to a SchoolGest backend: it logs in, keeps the session
on disk, refreshes the access token when it expires and wraps the
administration, academic, attendance and report card endpoints.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (defaults to $CONFIG_PATH, then the environment)")
	root.PersistentFlags().BoolVar(&c.banner, "banner", false, "print the application banner")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.registerCmd(),
		c.passwordCmd(),
		c.usersCmd(),
		c.classesCmd(),
		c.enrollCmd(),
		c.unenrollCmd(),
		c.scheduleCmd(),
		c.attendanceCmd(),
		c.gradesCmd(),
		c.inboxCmd(),
		c.bulletinsCmd(),
		c.uploadCmd(),
		c.adminCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.logger = newLogger(cfg, cmd.ErrOrStderr())
	if c.banner {
		displayAppname(cfg.GetAppName())
	}

	repo := filestore.New(config.SessionFilePath(cfg))
	notifier := notify.NewLogNotifier(c.logger)
	c.app, err = app.New(cfg, repo, notifier, terminalNavigator{logger: c.logger}, app.WithLogger(c.logger))
	if err != nil {
		return errors.Wrap(err, "[schoolgest setup] failed to create client")
	}
	if err := c.app.Start(cmd.Context()); err != nil {
		// The session has been cleared; commands that need one will say so
		c.logger.Debug().Err(err).Msg("session not restored")
	}
	return nil
}

func newLogger(cfg config.EnvConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// terminalNavigator turns redirects into hints for the next command to run
type terminalNavigator struct {
	logger zerolog.Logger
}

func (n terminalNavigator) Navigate(route string) {
	switch route {
	case notify.RouteLogin:
		n.logger.Info().Msg("run `schoolgest login` to start a new session")
	case notify.RouteAccessDenied:
		n.logger.Warn().Msg("your role does not allow this action")
	default:
		n.logger.Info().Str("route", route).Msg("navigate")
	}
}

// fail reports err through the client and returns an error main will not print again
func (c *cli) fail(ctx context.Context, err error, op string) error {
	if err == nil {
		return nil
	}
	details := c.app.Report(ctx, err, op)
	if apierror.IsRetryable(details) {
		c.logger.Info().Str("operation", op).Msg("temporary failure, the command can be run again")
	}
	return &reportedError{message: details.UserMessage}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeBlob(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}
