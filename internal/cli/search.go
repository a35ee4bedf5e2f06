package cli

import (
	"strings"

	"snipman/internal/format"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search clips of the active category by title or content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			var out clipList
			var scope string
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				if all {
					out = store.FilterClips(s.lib.Clips(), "", query)
					return nil
				}
				scope = s.lib.ActiveCategoryID()
				s.lib.SetSearchQuery(query)
				out = s.lib.VisibleClips()
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"count": len(out), "query": query}
			if scope != "" {
				meta["categoryId"] = scope
			}
			return writeOut(cmd, app, format.Envelope{Data: out, Meta: meta})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Search every category")
	return cmd
}
