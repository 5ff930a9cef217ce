// Command mts is a command line interface to the Mapbox Tilesets and
// Styles APIs.
package main

import (
	gerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/commands"
	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// Set by the release build.
var (
	version   = mts.Version
	gitCommit = "unknown"
	buildTime = "unknown"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mts",
		Short: "Manage Mapbox tilesets, sources and styles",
		Long: `mts wraps the Mapbox Tilesets API (tilesets, recipes, sources,
jobs, activity) and the Styles API.

Credentials come from MAPBOX_ACCESS_TOKEN and MAPBOX_USER_NAME, from
~/.mts/config.yaml, or from the --token and --username flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.TilesetCommand(),
		commands.RecipeCommand(),
		commands.SourceCommand(),
		commands.StyleCommand(),
		commands.ActivityCommand(),
		commands.EstimateAreaCommand(),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mts %s (commit %s, built %s)\n", version, gitCommit, buildTime)
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var cliErr *errors.CLIError
		if gerrors.As(err, &cliErr) {
			fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", cliErr.Code, cliErr.Error())
			os.Exit(cliErr.ExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
