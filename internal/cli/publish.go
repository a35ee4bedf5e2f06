package cli

import (
	"errors"
	"strings"

	"snipman/internal/format"
	"snipman/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir, categoryID string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export clips as Markdown pages (one per category)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			var res publish.WriteResult
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				var err error
				res, err = publish.WriteLibrary(s.lib, toDir, publish.WriteOptions{
					Overwrite:  overwrite,
					CategoryID: categoryID,
				})
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Meta: map[string]any{"files": len(res.Written)},
			})
		},
	}
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&categoryID, "category", "", "Only publish this category")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
