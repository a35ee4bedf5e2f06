package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"snipman/internal/format"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export categories and clips as a JSON bundle",
		Long:  "Without --out the bundle itself is written to stdout (no envelope), so it can be piped into `snipman import -`.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b store.Bundle
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				b = store.NewBundle(s.lib.Snapshot())
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			out = strings.TrimSpace(out)
			if out == "" || out == "-" {
				return store.WriteBundle(cmd.OutOrStdout(), b)
			}
			if !overwrite {
				if _, err := os.Stat(out); err == nil {
					return writeErr(cmd, errors.New("file exists (use --overwrite): "+out))
				}
			}
			var buf bytes.Buffer
			if err := store.WriteBundle(&buf, b); err != nil {
				return writeErr(cmd, err)
			}
			if dir := filepath.Dir(out); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"written":    out,
				"categories": len(b.Categories),
				"clips":      len(b.Clips),
			}})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the bundle to a file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing --out file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace, yes bool
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a JSON bundle (merge by default)",
		Long: strings.TrimSpace(`
Merge (default): categories with a known id are reused, others are created;
every clip is added as a new clip.

--replace: the stored library is replaced by the bundle.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				src = f
			}
			b, err := store.ReadBundle(src)
			if err != nil {
				return writeErr(cmd, err)
			}

			var data any
			err = withSession(cmd.Context(), app, true, func(s *session) error {
				if !replace {
					data = store.Import(s.lib, b)
					return nil
				}
				if !yes && args[0] == "-" {
					return errors.New("--replace with a bundle on stdin requires --yes")
				}
				if !yes {
					ok, err := confirm(cmd, "Replace every stored category and clip?")
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
				}
				s.lib = store.NewLibrary(b.Categories, b.Clips, store.WithActive(b.ActiveCategoryID))
				data = map[string]any{
					"categories": len(s.lib.Categories()),
					"clips":      len(s.lib.Clips()),
					"skipped":    len(b.Categories) + len(b.Clips) - len(s.lib.Categories()) - len(s.lib.Clips()),
					"replaced":   true,
				}
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: data, Hints: []string{"snipman doctor"}})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the library instead of merging")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt for --replace")
	return cmd
}
