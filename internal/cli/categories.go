package cli

import (
	"fmt"
	"strings"

	"snipman/internal/format"
	"snipman/internal/model"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cats"},
		Short:   "List and manage categories",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesRenameCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	cmd.AddCommand(newCategoriesUseCmd(app))
	return cmd
}

func iconUsage() string {
	icons := make([]string, 0, len(model.KnownIcons()))
	for _, ic := range model.KnownIcons() {
		icons = append(icons, string(ic))
	}
	return strings.Join(icons, "|")
}

func newCategoriesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out categoryList
			err := withSession(cmd.Context(), app, false, func(s *session) error {
				out = viewCategories(s.lib)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: out,
				Meta: map[string]any{"count": len(out)},
			})
		},
	}
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	var name, icon string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out categoryView
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				c, err := s.lib.CreateCategoryWithIcon(name, icon)
				if err != nil {
					return err
				}
				out = viewCategory(s.lib, c)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  out,
				Hints: []string{"snipman clips add --title <title> --content <text>"},
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&icon, "icon", string(model.IconFolder), "Icon ("+iconUsage()+")")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesRenameCmd(app *App) *cobra.Command {
	var name, icon string
	cmd := &cobra.Command{
		Use:   "rename <category-id>",
		Short: "Rename a category (and optionally change its icon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out categoryView
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				cur, ok := s.lib.FindCategory(args[0])
				if !ok {
					return fmt.Errorf("category not found: %s", args[0])
				}
				ic := string(cur.Icon)
				if cmd.Flags().Changed("icon") {
					ic = icon
				}
				c, err := s.lib.UpdateCategory(cur.ID, name, ic)
				if err != nil {
					return err
				}
				out = viewCategory(s.lib, c)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New category name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon ("+iconUsage()+")")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category and every clip in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			data := map[string]any{}
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				c, ok := s.lib.FindCategory(id)
				if !ok {
					return fmt.Errorf("category not found: %s", id)
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete category %q and its %d clip(s)?", c.Name, s.lib.ClipCount(id)))
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
				}
				removed, err := s.lib.DeleteCategory(id)
				if err != nil {
					return err
				}
				data["id"] = id
				data["clipsRemoved"] = removed
				data["activeCategoryId"] = s.lib.ActiveCategoryID()
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: data})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newCategoriesUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <category-id>",
		Short: "Make a category active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out categoryView
			err := withSession(cmd.Context(), app, true, func(s *session) error {
				if !s.lib.SetActiveCategory(args[0]) {
					return fmt.Errorf("category not found: %s", args[0])
				}
				out = viewCategory(s.lib, s.lib.ActiveCategory())
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
}
