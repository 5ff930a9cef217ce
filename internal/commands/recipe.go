package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/output"
)

// RecipeCommand returns the recipe command group.
func RecipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage tileset recipes",
	}

	cmd.AddCommand(
		recipeValidateCommand(),
		recipeGetCommand(),
		recipeUpdateCommand(),
	)
	return cmd
}

func recipeValidateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "validate <recipe-file>",
		Short:   "Validate a recipe document against the service",
		Example: "  mts recipe validate recipe.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			recipe, err := os.ReadFile(args[0])
			if err != nil {
				return errors.NewValidationError(
					fmt.Sprintf("cannot read recipe file: %v", err),
					"Pass a readable recipe JSON file.",
				)
			}

			result, err := client.ValidateRecipe(cmd.Context(), recipe)
			if err != nil {
				return translateError(err, "validate recipe")
			}
			if cfg.OutputFormat == "json" {
				return output.PrintJSON(result)
			}
			if result.Valid {
				if !cfg.Quiet {
					fmt.Println("Recipe is valid.")
				}
				return nil
			}
			for _, e := range result.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
			return errors.NewValidationError("recipe is invalid",
				"Fix the reported errors and validate again.")
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func recipeGetCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "get <tileset-id>",
		Short:   "Print the recipe of a tileset",
		Example: "  mts recipe get user.buildings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			handle, err := tilesetHandle(cfg, args[0])
			if err != nil {
				return err
			}

			recipe, err := client.Recipe(cmd.Context(), handle)
			if err != nil {
				return translateError(err, "fetch recipe")
			}
			return output.PrintJSON(recipe)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func recipeUpdateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "update <tileset-id> <recipe-file>",
		Short:   "Replace the recipe of a tileset",
		Long:    "Replace the recipe of a tileset. The new recipe takes effect on the next publish.",
		Example: "  mts recipe update user.buildings recipe.json",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			handle, err := tilesetHandle(cfg, args[0])
			if err != nil {
				return err
			}

			recipe, err := os.ReadFile(args[1])
			if err != nil {
				return errors.NewValidationError(
					fmt.Sprintf("cannot read recipe file: %v", err),
					"Pass a readable recipe JSON file.",
				)
			}

			if err := client.UpdateRecipe(cmd.Context(), handle, recipe); err != nil {
				return translateError(err, "update recipe")
			}
			return printMessage(cfg, fmt.Sprintf("Updated recipe for %s.", args[0]))
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}
