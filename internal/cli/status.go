package cli

import (
	"snipman/internal/format"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where data lives and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{}
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				active := s.lib.ActiveCategory()
				data["dataDir"] = s.dir
				data["dbPath"] = s.kv.Path()
				data["categories"] = len(s.lib.Categories())
				data["clips"] = len(s.lib.Clips())
				data["activeCategoryId"] = active.ID
				data["activeCategory"] = active.Name
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if p, err := store.ConfigPath(); err == nil {
				data["configPath"] = p
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  data,
				Hints: []string{"snipman doctor", "snipman clips list"},
			})
		},
	}
}
