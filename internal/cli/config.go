package cli

import (
	"snipman/internal/format"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change global settings (config.json)",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: app.config(),
				Meta: map[string]any{"path": path, "keys": store.ConfigKeys()},
			})
		},
	}

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set one config key",
		Args:      cobra.ExactArgs(2),
		ValidArgs: store.ConfigKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if err := store.SetConfigValue(&cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(&cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.cfg = &cfg
			return writeOut(cmd, app, format.Envelope{Data: cfg})
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}
