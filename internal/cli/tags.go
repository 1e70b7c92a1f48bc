package cli

import (
	"context"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
)

// addTagCommands adds tag management commands.
func addTagCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Strategy tag management",
		Long:  "Manage the list of strategy tags available for labeling trades.",
	}

	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsAddCmd(app))
	cmd.AddCommand(newTagsRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTagsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			tags, err := app.Store.GetTags(ctx)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(tags)
			}

			output.Bold("Available Tags")
			for _, tag := range tags {
				output.Printf("  %s\n", tag)
			}
			return nil
		},
	}
}

func newTagsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tag>",
		Short: "Add a tag to the available list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			tags, err := app.Store.GetTags(ctx)
			if err != nil {
				return err
			}
			for _, existing := range tags {
				if existing == args[0] {
					output.Info("Tag %q already exists.", args[0])
					return nil
				}
			}
			tags = append(tags, args[0])
			if err := app.Store.SaveTags(ctx, tags); err != nil {
				return err
			}
			output.Success("✓ Added tag %q", args[0])
			return nil
		},
	}
}

func newTagsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tag>",
		Short: "Remove a tag from the available list",
		Long:  "Remove a tag from the available list. Trades already carrying the tag keep it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			tags, err := app.Store.GetTags(ctx)
			if err != nil {
				return err
			}
			kept := tags[:0]
			found := false
			for _, existing := range tags {
				if existing == args[0] {
					found = true
					continue
				}
				kept = append(kept, existing)
			}
			if !found {
				output.Info("Tag %q is not in the list.", args[0])
				return nil
			}
			if err := app.Store.SaveTags(ctx, kept); err != nil {
				return err
			}
			output.Success("✓ Removed tag %q", args[0])
			return nil
		},
	}
}
