package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/config"
	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/guard"
	"github.com/mapbox-community/mts-go/internal/progress"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// SourceCommand returns the source command group.
func SourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Manage tileset sources",
		Long:  "Upload, inspect, list and delete tileset sources (line-delimited GeoJSON).",
	}

	cmd.AddCommand(
		sourceUploadCommand(),
		sourceGetCommand(),
		sourceDeleteCommand(),
		sourceListCommand(),
		sourceValidateCommand(),
	)
	return cmd
}

func sourceUploadCommand() *cobra.Command {
	var flags commonFlags
	var replace, noValidation bool

	cmd := &cobra.Command{
		Use:   "upload <source-id> <file> [file...]",
		Short: "Upload GeoJSON files to a tileset source",
		Long: "Stream one or more GeoJSON files to a tileset source as " +
			"line-delimited GeoJSON. With --replace the existing source data " +
			"is replaced instead of appended to.",
		Example: `  mts source upload buildings data/*.geojson
  mts source upload buildings data.geojson --replace`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			srcID, files := args[0], args[1:]
			start := time.Now()
			ind := progressIndicator(cfg)
			ind.Update("upload "+srcID, 0, len(files), time.Since(start))

			src, err := client.UploadSource(cmd.Context(), srcID, files, mts.UploadSourceOptions{
				Replace:        replace,
				SkipValidation: noValidation,
			})
			if err != nil {
				return translateError(err, "upload source")
			}
			ind.Complete("upload "+srcID, len(files), time.Since(start))

			return printRows(cfg,
				[]string{"ID", "FILES", "SIZE"},
				[][]string{{src.ID, fmt.Sprintf("%d", src.Files), src.SizeNice}},
				src)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace existing source data instead of appending")
	cmd.Flags().BoolVar(&noValidation, "no-validation", false, "Skip local GeoJSON validation before upload")
	return cmd
}

func sourceGetCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "get <source-id>",
		Short:   "Show a tileset source",
		Example: "  mts source get buildings",
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

			src, err := client.GetSource(cmd.Context(), args[0])
			if err != nil {
				return translateError(err, "fetch source")
			}
			return printRows(cfg,
				[]string{"ID", "FILES", "SIZE"},
				[][]string{{src.ID, fmt.Sprintf("%d", src.Files), src.SizeNice}},
				src)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func sourceDeleteCommand() *cobra.Command {
	var flags commonFlags
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <source-id>",
		Short:   "Delete a tileset source",
		Long:    "Delete a tileset source. Deletions are throttled to one per 20 seconds unless --force is given.",
		Example: "  mts source delete buildings",
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
				if err := checkGuard(g, "source-delete", "source deletion"); err != nil {
					return err
				}
				if !confirm(fmt.Sprintf("Delete source %s? [y/N] ", args[0])) {
					return errors.NewUsageError("deletion aborted")
				}
			}

			if err := client.DeleteSource(cmd.Context(), args[0]); err != nil {
				return translateError(err, "delete source")
			}
			if err := g.Record("source-delete"); err != nil && cfg.Verbose {
				stderrf(cfg, "warning: could not record deletion time: %v\n", err)
			}
			return printMessage(cfg, fmt.Sprintf("Deleted source %s.", args[0]))
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation and the deletion throttle")
	return cmd
}

func sourceListCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tileset sources for the account",
		Example: "  mts source list --format json",
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

			sources, err := client.ListSources(cmd.Context())
			if err != nil {
				return translateError(err, "list sources")
			}

			rows := make([][]string, 0, len(sources))
			for _, s := range sources {
				rows = append(rows, []string{s.ID, fmt.Sprintf("%d", s.Files), s.SizeNice})
			}
			return printRows(cfg, []string{"ID", "FILES", "SIZE"}, rows, sources)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func sourceValidateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "validate <file> [file...]",
		Short:   "Validate GeoJSON files locally without uploading",
		Example: "  mts source validate data/*.geojson",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}

			start := time.Now()
			ind := progressIndicator(cfg)
			for i, path := range args {
				if err := mts.ValidateSourceFiles(path); err != nil {
					return errors.NewValidationError(err.Error(),
						"Each file must contain line-delimited GeoJSON features with non-empty geometries.")
				}
				ind.Update("validate", i+1, len(args), time.Since(start))
			}
			ind.Complete("validate", len(args), time.Since(start))
			return printMessage(cfg, fmt.Sprintf("%d file(s) are valid.", len(args)))
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

// progressIndicator builds an indicator matching the configured verbosity.
func progressIndicator(cfg *config.Config) *progress.Indicator {
	format := "table"
	if cfg.OutputFormat == "json" {
		format = "json"
	}
	return progress.NewIndicator(nil, format, !cfg.Quiet)
}
