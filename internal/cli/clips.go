package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"snipman/internal/format"
	"snipman/internal/model"
	"snipman/internal/store"

	"github.com/spf13/cobra"
)

func newClipsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clips",
		Aliases: []string{"clip"},
		Short:   "List and manage clips",
	}
	cmd.AddCommand(newClipsListCmd(app))
	cmd.AddCommand(newClipsShowCmd(app))
	cmd.AddCommand(newClipsAddCmd(app))
	cmd.AddCommand(newClipsEditCmd(app))
	cmd.AddCommand(newClipsDeleteCmd(app))
	cmd.AddCommand(newClipsCopyCmd(app))
	return cmd
}

func newClipsListCmd(app *App) *cobra.Command {
	var categoryID, query string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clips of the active category (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && categoryID != "" {
				return writeErr(cmd, errors.New("use either --category or --all"))
			}
			var out clipList
			var scope string
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				switch {
				case all:
					scope = ""
				case categoryID != "":
					if _, ok := s.lib.FindCategory(categoryID); !ok {
						return fmt.Errorf("category not found: %s", categoryID)
					}
					scope = categoryID
				default:
					scope = s.lib.ActiveCategoryID()
				}
				out = store.FilterClips(s.lib.Clips(), scope, query)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"count": len(out)}
			if scope != "" {
				meta["categoryId"] = scope
			}
			if query != "" {
				meta["query"] = query
			}
			return writeOut(cmd, app, format.Envelope{Data: out, Meta: meta})
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (default: active category)")
	cmd.Flags().BoolVar(&all, "all", false, "List clips of every category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive substring of title or content")
	return cmd
}

func findClip(lib *store.Library, id string) (model.Clip, error) {
	c, ok := lib.FindClip(strings.TrimSpace(id))
	if !ok {
		return model.Clip{}, fmt.Errorf("clip not found: %s", id)
	}
	return c, nil
}

func newClipsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <clip-id>",
		Short: "Show one clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out model.Clip
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				c, err := findClip(s.lib, args[0])
				out = c
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  out,
				Hints: []string{"snipman clips copy " + out.ID},
			})
		},
	}
}

// readContent returns --content, or stdin when --stdin is set.
func readContent(cmd *cobra.Command, content string, fromStdin bool) (string, error) {
	if !fromStdin {
		return content, nil
	}
	if cmd.Flags().Changed("content") {
		return "", errors.New("use either --content or --stdin")
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newClipsAddCmd(app *App) *cobra.Command {
	var title, content, categoryID string
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a clip at the top of a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readContent(cmd, content, fromStdin)
			if err != nil {
				return writeErr(cmd, err)
			}
			var out model.Clip
			err = withSession(cmd.Context(), app, true, func(s *session) error {
				catID := categoryID
				if catID == "" {
					catID = s.lib.ActiveCategoryID()
				}
				c, err := s.lib.CreateClip(title, body, catID)
				out = c
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  out,
				Hints: []string{"snipman clips copy " + out.ID},
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Clip title")
	cmd.Flags().StringVar(&content, "content", "", "Clip content")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (default: active category)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newClipsEditCmd(app *App) *cobra.Command {
	var title, content, categoryID string
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "edit <clip-id>",
		Short: "Edit a clip in place (unset flags keep their value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body string
			if fromStdin || cmd.Flags().Changed("content") {
				b, err := readContent(cmd, content, fromStdin)
				if err != nil {
					return writeErr(cmd, err)
				}
				body = b
			}
			var out model.Clip
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				cur, err := findClip(s.lib, args[0])
				if err != nil {
					return err
				}
				next := cur
				if cmd.Flags().Changed("title") {
					next.Title = title
				}
				if fromStdin || cmd.Flags().Changed("content") {
					next.Content = body
				}
				if cmd.Flags().Changed("category") {
					next.CategoryID = categoryID
				}
				c, err := s.lib.UpdateClip(cur.ID, next.Title, next.Content, next.CategoryID)
				out = c
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read new content from stdin")
	cmd.Flags().StringVar(&categoryID, "category", "", "Move to category id")
	return cmd
}

func newClipsDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <clip-id>",
		Short: "Delete a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			deleted := false
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				c, ok := s.lib.FindClip(id)
				if !ok {
					// Deleting twice is not an error.
					return nil
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete clip %q?", c.Title))
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
				}
				deleted = s.lib.DeleteClip(id)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"id": id, "deleted": deleted}})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newClipsCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <clip-id>",
		Short: "Copy a clip's content to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c model.Clip
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				var err error
				c, err = findClip(s.lib, args[0])
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			relay := app.clipboardRelay(cmd)
			if err := relay.Copy(cmd.Context(), c.Content); err != nil {
				app.logger().Debug("copy failed", "relay", relay.Name(), "err", err)
				return writeErr(cmd, fmt.Errorf("copy %s: %w", c.ID, err))
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"id":    c.ID,
				"title": c.Title,
				"bytes": len(c.Content),
				"relay": relay.Name(),
			}})
		},
	}
}
