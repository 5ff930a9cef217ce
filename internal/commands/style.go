package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/config"
	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/guard"
	"github.com/mapbox-community/mts-go/internal/output"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// StyleCommand returns the style command group.
func StyleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Manage map styles",
		Long:  "List, inspect, create, update and delete Mapbox styles.",
	}

	cmd.AddCommand(
		styleListCommand(),
		styleGetCommand(),
		styleCreateCommand(),
		styleUpdateCommand(),
		styleDeleteCommand(),
	)
	return cmd
}

func styleListCommand() *cobra.Command {
	var flags commonFlags
	var draft bool
	var limit int
	var start string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List styles for the account",
		Example: "  mts style list --draft --limit 25",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			styles, err := client.ListStyles(cmd.Context(), mts.ListStylesOptions{
				Draft: draft,
				Limit: limit,
				Start: start,
			})
			if err != nil {
				return translateError(err, "list styles")
			}

			rows := make([][]string, 0, len(styles))
			for _, s := range styles {
				rows = append(rows, []string{s.ID, s.Name, s.Visibility, s.Modified})
			}
			return printRows(cfg, []string{"ID", "NAME", "VISIBILITY", "MODIFIED"}, rows, styles)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVar(&draft, "draft", false, "List draft versions instead of published ones")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of styles to return")
	cmd.Flags().StringVar(&start, "start", "", "Pagination key from a previous response")
	return cmd
}

func styleGetCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "get <style-id>",
		Short:   "Fetch a style document",
		Example: "  mts style get cjxyz123",
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

			style, err := client.GetStyle(cmd.Context(), args[0])
			if err != nil {
				return translateError(err, "fetch style")
			}
			return output.PrintJSON(style)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func styleCreateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "create <style-file>",
		Short:   "Create a style from a JSON document",
		Example: "  mts style create style.json",
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

			doc, err := os.ReadFile(args[0])
			if err != nil {
				return errors.NewValidationError(
					fmt.Sprintf("cannot read style file: %v", err),
					"Pass a readable Mapbox style JSON file.",
				)
			}

			style, err := client.CreateStyle(cmd.Context(), doc)
			if err != nil {
				return translateError(err, "create style")
			}
			return printRows(cfg,
				[]string{"ID", "NAME", "VISIBILITY"},
				[][]string{{style.ID, style.Name, style.Visibility}},
				style)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func styleUpdateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "update <style-id> <style-file>",
		Short:   "Update a style from a JSON document",
		Example: "  mts style update cjxyz123 style.json",
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

			doc, err := os.ReadFile(args[1])
			if err != nil {
				return errors.NewValidationError(
					fmt.Sprintf("cannot read style file: %v", err),
					"Pass a readable Mapbox style JSON file.",
				)
			}

			style, err := client.UpdateStyle(cmd.Context(), args[0], doc)
			if err != nil {
				return translateError(err, "update style")
			}
			return printRows(cfg,
				[]string{"ID", "NAME", "VISIBILITY"},
				[][]string{{style.ID, style.Name, style.Visibility}},
				style)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func styleDeleteCommand() *cobra.Command {
	var flags commonFlags
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <style-id>",
		Short:   "Delete a style",
		Long:    "Delete a style. Deletions are throttled to one per 20 seconds unless --force is given.",
		Example: "  mts style delete cjxyz123",
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

			g := guard.New(config.GuardDir(), time.Duration(cfg.GuardInterval)*time.Second)
			if !force {
				if err := checkGuard(g, "style-delete", "style deletion"); err != nil {
					return err
				}
				if !confirm(fmt.Sprintf("Delete style %s? [y/N] ", args[0])) {
					return errors.NewUsageError("deletion aborted")
				}
			}

			if err := client.DeleteStyle(cmd.Context(), args[0]); err != nil {
				return translateError(err, "delete style")
			}
			if err := g.Record("style-delete"); err != nil && cfg.Verbose {
				stderrf(cfg, "warning: could not record deletion time: %v\n", err)
			}
			return printMessage(cfg, fmt.Sprintf("Deleted style %s.", args[0]))
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation and the deletion throttle")
	return cmd
}
