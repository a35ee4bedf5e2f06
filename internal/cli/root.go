package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"snipman/internal/clipboard"
	"snipman/internal/format"
	"snipman/internal/logging"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg *store.Config
	log *slog.Logger

	// relay overrides the clipboard backend (tests).
	relay clipboard.Relay
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "snipman",
		Short:        "snipman: a local snippet manager (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  snipman

  # Scriptable commands
  snipman clips list
  snipman clips add --title "Signature" --content "Best regards"
  echo "some text" | snipman clips add --title "Piped" --stdin

  # Copy a clip to the clipboard
  snipman clips copy clip_1

  # Direct clip lookup (shortcut for: snipman clips show <clip-id>)
  snipman clip_1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd.ErrOrStderr())
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SNIPMAN_DIR", ""), "Data directory holding snipman.sqlite (default: <configdir>/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SNIPMAN_FORMAT", "json"), "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("SNIPMAN_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newClipsCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDemoCmd(app))

	return cmd
}

// init loads the global config and builds the stderr logger. Flags and env
// win over config values.
func (app *App) init(stderr io.Writer) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg

	level := app.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	app.log = logging.New(stderr, logging.ParseLevel(level, slog.LevelWarn))

	switch strings.ToLower(strings.TrimSpace(app.Format)) {
	case "json", "edn", "table":
	default:
		return fmt.Errorf("unknown --format %q (expected %s)", app.Format, strings.Join(format.Formats(), "|"))
	}
	return nil
}

func (app *App) config() store.Config {
	if app.cfg == nil {
		return store.Config{}
	}
	return *app.cfg
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return logging.Discard()
	}
	return app.log
}

func (app *App) clipboardRelay(cmd *cobra.Command) clipboard.Relay {
	if app.relay != nil {
		return app.relay
	}
	return clipboard.FromEnv(cmd.ErrOrStderr())
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, env format.Envelope) error {
	return format.Write(cmd.OutOrStdout(), env, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
