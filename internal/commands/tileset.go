package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/config"
	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/guard"
	"github.com/mapbox-community/mts-go/internal/health"
	"github.com/mapbox-community/mts-go/internal/output"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// TilesetCommand returns the tileset command group.
func TilesetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tileset",
		Short: "Manage tilesets",
		Long:  "Create, publish, update, delete and inspect Mapbox tilesets.",
	}

	cmd.AddCommand(
		tilesetCreateCommand(),
		tilesetPublishCommand(),
		tilesetUpdateCommand(),
		tilesetDeleteCommand(),
		tilesetStatusCommand(),
		tilesetTileJSONCommand(),
		tilesetJobsCommand(),
		tilesetJobCommand(),
		tilesetListCommand(),
	)
	return cmd
}

func tilesetCreateCommand() *cobra.Command {
	var flags commonFlags
	var recipePath, name, description, attribution string
	var private bool

	cmd := &cobra.Command{
		Use:   "create <tileset-id>",
		Short: "Create a new tileset",
		Example: `  mts tileset create user.buildings --recipe recipe.json --name "Buildings"
  mts tileset create user.roads --recipe recipe.json --name Roads --private`,
		Args: cobra.ExactArgs(1),
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

			recipe, err := os.ReadFile(recipePath)
			if err != nil {
				return errors.NewValidationError(
					fmt.Sprintf("cannot read recipe file: %v", err),
					"Pass a readable recipe JSON file with --recipe.",
				)
			}

			req := mts.CreateTilesetRequest{
				Name:        name,
				Description: description,
				Private:     private,
				Recipe:      recipe,
			}
			if attribution != "" {
				if !json.Valid([]byte(attribution)) {
					return errors.NewValidationError(
						"attribution is not valid JSON",
						`Pass a JSON array like '[{"text":"© You","link":"https://example.com"}]'.`,
					)
				}
				req.Attribution = json.RawMessage(attribution)
			}

			resp, err := client.CreateTileset(cmd.Context(), handle, req)
			if err != nil {
				return translateError(err, "create tileset")
			}
			return printMessage(cfg, resp.Message)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&recipePath, "recipe", "", "Path to the recipe JSON file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Human-readable tileset name")
	cmd.Flags().StringVar(&description, "description", "", "Tileset description")
	cmd.Flags().StringVar(&attribution, "attribution", "", "Attribution JSON string")
	cmd.Flags().BoolVar(&private, "private", false, "Restrict access to your account")
	_ = cmd.MarkFlagRequired("recipe")
	return cmd
}

func tilesetPublishCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "publish <tileset-id>",
		Short:   "Start a publish job for a tileset",
		Example: "  mts tileset publish user.buildings",
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

			resp, err := client.PublishTileset(cmd.Context(), handle)
			if err != nil {
				return translateError(err, "publish tileset")
			}
			if cfg.OutputFormat == "json" {
				return output.PrintJSON(resp)
			}
			if !cfg.Quiet {
				fmt.Println(resp.Message)
				fmt.Printf("Job %s started. Track it with: mts tileset job %s %s\n",
					resp.JobID, args[0], resp.JobID)
			}
			return nil
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func tilesetUpdateCommand() *cobra.Command {
	var flags commonFlags
	var name, description, attribution string
	var private, public bool

	cmd := &cobra.Command{
		Use:     "update <tileset-id>",
		Short:   "Update tileset metadata",
		Example: `  mts tileset update user.buildings --name "New name" --public`,
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
			if private && public {
				return errors.NewUsageError("--private and --public are mutually exclusive")
			}

			handle, err := tilesetHandle(cfg, args[0])
			if err != nil {
				return err
			}

			req := mts.UpdateTilesetRequest{
				Name:        name,
				Description: description,
			}
			if attribution != "" {
				if !json.Valid([]byte(attribution)) {
					return errors.NewValidationError(
						"attribution is not valid JSON",
						`Pass a JSON array like '[{"text":"© You","link":"https://example.com"}]'.`,
					)
				}
				req.Attribution = json.RawMessage(attribution)
			}
			if private {
				v := true
				req.Private = &v
			}
			if public {
				v := false
				req.Private = &v
			}

			if err := client.UpdateTileset(cmd.Context(), handle, req); err != nil {
				return translateError(err, "update tileset")
			}
			return printMessage(cfg, fmt.Sprintf("Updated tileset %s.", args[0]))
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&name, "name", "", "Human-readable tileset name")
	cmd.Flags().StringVar(&description, "description", "", "Tileset description")
	cmd.Flags().StringVar(&attribution, "attribution", "", "Attribution JSON string")
	cmd.Flags().BoolVar(&private, "private", false, "Restrict access to your account")
	cmd.Flags().BoolVar(&public, "public", false, "Make the tileset public")
	return cmd
}

func tilesetDeleteCommand() *cobra.Command {
	var flags commonFlags
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <tileset-id>",
		Short:   "Delete a tileset",
		Long:    "Delete a tileset. Deletions are throttled to one per 20 seconds unless --force is given.",
		Example: "  mts tileset delete user.buildings",
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

			g := guard.New(config.GuardDir(), time.Duration(cfg.GuardInterval)*time.Second)
			if !force {
				if err := checkGuard(g, "tileset-delete", "tileset deletion"); err != nil {
					return err
				}
				if !confirm(fmt.Sprintf("Delete tileset %s? [y/N] ", args[0])) {
					return errors.NewUsageError("deletion aborted")
				}
			}

			checker := health.NewChecker(0)
			if err := checker.Check(cmd.Context(), cfg.APIEndpoint); err != nil {
				return errors.NewOperationError(
					fmt.Sprintf("Mapbox API unreachable: %v", err),
					"Check network connectivity and try again.",
				)
			}

			if err := client.DeleteTileset(cmd.Context(), handle); err != nil {
				return translateError(err, "delete tileset")
			}
			if err := g.Record("tileset-delete"); err != nil && cfg.Verbose {
				stderrf(cfg, "warning: could not record deletion time: %v\n", err)
			}
			return printMessage(cfg, fmt.Sprintf("Deleted tileset %s.", args[0]))
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation and the deletion throttle")
	return cmd
}

func tilesetStatusCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "status <tileset-id>",
		Short:   "Show the status of the most recent job",
		Example: "  mts tileset status user.buildings",
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

			status, err := client.TilesetStatus(cmd.Context(), handle)
			if err != nil {
				return translateError(err, "tileset status")
			}
			return printRows(cfg,
				[]string{"TILESET", "LATEST JOB", "STATUS"},
				[][]string{{status.ID, status.LatestJob, status.Status}},
				status)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func tilesetTileJSONCommand() *cobra.Command {
	var flags commonFlags
	var secure bool

	cmd := &cobra.Command{
		Use:     "tilejson <tileset-id> [tileset-id...]",
		Short:   "Fetch the TileJSON for up to 15 tilesets",
		Example: "  mts tileset tilejson user.buildings user.roads --secure",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			handles := make([]string, 0, len(args))
			for _, arg := range args {
				handle, err := tilesetHandle(cfg, arg)
				if err != nil {
					return err
				}
				handles = append(handles, handle)
			}

			tj, err := client.TileJSON(cmd.Context(), handles, secure)
			if err != nil {
				return translateError(err, "fetch tilejson")
			}
			return output.PrintJSON(tj)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().BoolVar(&secure, "secure", false, "Request HTTPS resource URLs")
	return cmd
}

func tilesetJobsCommand() *cobra.Command {
	var flags commonFlags
	var stage string
	var limit int

	cmd := &cobra.Command{
		Use:     "jobs <tileset-id>",
		Short:   "List jobs for a tileset",
		Example: "  mts tileset jobs user.buildings --stage success",
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

			jobs, err := client.ListJobs(cmd.Context(), handle, mts.JobsOptions{
				Stage: stage,
				Limit: limit,
			})
			if err != nil {
				return translateError(err, "list jobs")
			}

			rows := make([][]string, 0, len(jobs))
			for _, j := range jobs {
				rows = append(rows, []string{j.ID, j.Stage, strconv.FormatInt(j.Created, 10), strconv.Itoa(len(j.Errors))})
			}
			return printRows(cfg, []string{"JOB", "STAGE", "CREATED", "ERRORS"}, rows, jobs)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&stage, "stage", "", "Filter by job stage (queued, processing, success, failed)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of jobs to return (1-500)")
	return cmd
}

func tilesetJobCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:     "job <tileset-id> <job-id>",
		Short:   "Show a single job",
		Example: "  mts tileset job user.buildings abc123",
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

			job, err := client.GetJob(cmd.Context(), handle, args[1])
			if err != nil {
				return translateError(err, "fetch job")
			}
			return output.PrintJSON(job)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}

func tilesetListCommand() *cobra.Command {
	var flags commonFlags
	var tilesetType, visibility, sortBy string
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tilesets for the account",
		Example: "  mts tileset list --type vector --visibility private --limit 50",
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

			tilesets, err := client.ListTilesets(cmd.Context(), mts.ListTilesetsOptions{
				Type:       tilesetType,
				Visibility: visibility,
				SortBy:     sortBy,
				Limit:      limit,
			})
			if err != nil {
				return translateError(err, "list tilesets")
			}

			rows := make([][]string, 0, len(tilesets))
			for _, t := range tilesets {
				rows = append(rows, []string{t.ID, t.Name, t.Type, t.Visibility, t.Modified})
			}
			return printRows(cfg, []string{"ID", "NAME", "TYPE", "VISIBILITY", "MODIFIED"}, rows, tilesets)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&tilesetType, "type", "", "Filter by type (vector, raster)")
	cmd.Flags().StringVar(&visibility, "visibility", "", "Filter by visibility (public, private)")
	cmd.Flags().StringVar(&sortBy, "sortby", "", "Sort results (created, modified)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of tilesets to return (1-500)")
	return cmd
}

// printMessage prints a single result message honoring quiet and format.
func printMessage(cfg *config.Config, msg string) error {
	if cfg.OutputFormat == "json" {
		return output.PrintJSON(map[string]string{"message": msg})
	}
	if !cfg.Quiet {
		fmt.Println(msg)
	}
	return nil
}

// confirm prompts on stdin and accepts y/Y.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
