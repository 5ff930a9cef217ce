// Package config provides configuration management for the mts CLI.
//
// Purpose:
//
//	Load configuration from multiple sources: environment variables, config
//	files (YAML), and command-line flags. Uses Viper with clear precedence:
//	flags > environment variables > config file > defaults.
//
// Configuration Sources:
//   - MAPBOX_ACCESS_TOKEN and MAPBOX_USER_NAME: credentials, bound
//     explicitly because they are the contract other Mapbox tooling uses
//   - MTS_* environment variables for everything else (e.g. MTS_API_ENDPOINT)
//   - Config file: ~/.mts/config.yaml or ./config.yaml
//   - Command-line flags: take precedence over all other sources
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all CLI configuration.
type Config struct {
	// Mapbox API
	APIEndpoint string
	Username    string
	AccessToken string

	// Output Settings
	OutputFormat string // table, json, csv
	Verbose      bool
	Quiet        bool

	// Retry Settings
	MaxRetries int
	Timeout    int // seconds

	// Destructive-operation throttle
	GuardInterval int // seconds between deletions of the same kind

	// Config File Path (for discovery)
	ConfigFile string
}

// Load loads configuration from all sources with proper precedence.
func Load() (*Config, error) {
	v := viper.New()

	ApplyDefaults(v)

	v.SetEnvPrefix("MTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Credentials keep the env names the wider Mapbox tooling reads.
	_ = v.BindEnv("auth.access-token", "MAPBOX_ACCESS_TOKEN", "MTS_ACCESS_TOKEN")
	_ = v.BindEnv("auth.username", "MAPBOX_USER_NAME", "MTS_USERNAME")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".mts"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		APIEndpoint:   v.GetString("api.endpoint"),
		Username:      v.GetString("auth.username"),
		AccessToken:   v.GetString("auth.access-token"),
		OutputFormat:  v.GetString("defaults.output-format"),
		Verbose:       v.GetBool("defaults.verbose"),
		Quiet:         v.GetBool("defaults.quiet"),
		MaxRetries:    v.GetInt("retry.max-attempts"),
		Timeout:       v.GetInt("retry.timeout"),
		GuardInterval: v.GetInt("guard.min-interval"),
		ConfigFile:    v.ConfigFileUsed(),
	}

	return cfg, nil
}

// GuardDir returns the directory where the deletion guard keeps its
// records.
func GuardDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mts"
	}
	return filepath.Join(homeDir, ".mts")
}
