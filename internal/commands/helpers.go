// Package commands implements the mts CLI command tree.
//
// Purpose:
//
//	Cobra commands mirroring the Mapbox tilesets-cli surface: tileset
//	lifecycle, recipe management, source upload, style CRUD, activity
//	reports and area estimation. Commands translate flags and config into
//	pkg/mts client calls and format results via internal/output.
package commands

import (
	gerrors "errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/config"
	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/guard"
	"github.com/mapbox-community/mts-go/internal/output"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// commonFlags are shared by every command.
type commonFlags struct {
	format   string
	verbose  bool
	quiet    bool
	token    string
	username string
	endpoint string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().StringVar(&f.token, "token", "", "Mapbox access token (overrides MAPBOX_ACCESS_TOKEN)")
	cmd.Flags().StringVar(&f.username, "username", "", "Mapbox account username (overrides MAPBOX_USER_NAME)")
	cmd.Flags().StringVar(&f.endpoint, "api-endpoint", "", "Mapbox API endpoint (overrides config)")
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig(f *commonFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewOperationError(
			fmt.Sprintf("failed to load configuration: %v", err),
			"Check your configuration file or environment variables.",
		)
	}

	if f.token != "" {
		cfg.AccessToken = f.token
	}
	if f.username != "" {
		cfg.Username = f.username
	}
	if f.endpoint != "" {
		cfg.APIEndpoint = f.endpoint
	}
	if f.format != "" {
		cfg.OutputFormat = f.format
	}
	if f.verbose {
		cfg.Verbose = true
	}
	if f.quiet {
		cfg.Quiet = true
	}
	return cfg, nil
}

// newClient builds an API client from the resolved configuration.
func newClient(cfg *config.Config) (*mts.Client, error) {
	if cfg.AccessToken == "" {
		return nil, errors.NewValidationError(
			"no access token configured",
			"Set MAPBOX_ACCESS_TOKEN or pass --token.",
		)
	}
	if cfg.Username == "" {
		return nil, errors.NewValidationError(
			"no account username configured",
			"Set MAPBOX_USER_NAME or pass --username.",
		)
	}

	log := zerolog.Nop()
	if cfg.Verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	}

	opts := []mts.Option{mts.WithLogger(log)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, mts.WithBaseURL(cfg.APIEndpoint))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, mts.WithRetryConfig(mts.RetryConfig{
			MaxAttempts:  cfg.MaxRetries,
			InitialDelay: 1 * time.Second,
			MaxDelay:     4 * time.Second,
		}))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mts.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		}))
	}

	client, err := mts.New(cfg.Username, cfg.AccessToken, opts...)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), "Check the credential configuration.")
	}
	return client, nil
}

// printRows renders list output in the configured format.
func printRows(cfg *config.Config, headers []string, rows [][]string, data interface{}) error {
	switch cfg.OutputFormat {
	case "json":
		return output.PrintJSON(data)
	case "csv":
		return output.PrintCSV(headers, rows)
	default:
		if len(rows) == 0 {
			if !cfg.Quiet {
				fmt.Println("No results.")
			}
			return nil
		}
		return output.PrintTable(headers, rows)
	}
}

// invalidInput maps SDK validation failures onto usage-style errors; other
// failures go through the API error translation.
func translateError(err error, operation string) error {
	var idErr *mts.InvalidIDError
	if gerrors.As(err, &idErr) {
		return errors.NewValidationError(idErr.Error(),
			"IDs may use up to 32 alphanumeric, '-' or '_' characters.")
	}
	return errors.FromAPIError(err, operation)
}

// tilesetHandle accepts either a bare handle or a full username.handle
// tileset ID and returns the handle. The client composes the full ID from
// the configured account, so IDs naming another account are rejected here.
func tilesetHandle(cfg *config.Config, arg string) (string, error) {
	i := strings.IndexByte(arg, '.')
	if i < 0 {
		return arg, nil
	}
	owner, handle := arg[:i], arg[i+1:]
	if !strings.EqualFold(owner, cfg.Username) {
		return "", errors.NewValidationError(
			fmt.Sprintf("tileset %s belongs to account %q, not %q", arg, owner, cfg.Username),
			"Pass a tileset of your own account, or change --username.",
		)
	}
	return handle, nil
}

// checkGuard translates a throttled deletion into a CLI error with the
// remaining wait time.
func checkGuard(g *guard.Guard, operation, label string) error {
	if err := g.Check(operation); err != nil {
		var restricted *guard.RestrictedError
		if gerrors.As(err, &restricted) {
			return errors.NewRestrictedError(label, restricted.Wait)
		}
		return errors.NewOperationError(err.Error(), "Retry shortly.")
	}
	return nil
}

// stderrf prints progress text to stderr unless quiet.
func stderrf(cfg *config.Config, format string, args ...interface{}) {
	if cfg.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
