package config

import (
	"github.com/spf13/viper"

	"github.com/mapbox-community/mts-go/pkg/mts"
)

// ApplyDefaults sets default configuration values in the provided Viper instance.
func ApplyDefaults(v *viper.Viper) {
	// Mapbox API root; override for tests or API-compatible mocks
	v.SetDefault("api.endpoint", mts.DefaultBaseURL)

	// Output Settings
	v.SetDefault("defaults.output-format", "table") // table, json, csv
	v.SetDefault("defaults.verbose", false)
	v.SetDefault("defaults.quiet", false)

	// Retry Settings
	v.SetDefault("retry.max-attempts", 3)
	v.SetDefault("retry.timeout", 30)      // seconds
	v.SetDefault("retry.initial-delay", 1) // seconds
	v.SetDefault("retry.max-delay", 4)     // seconds

	// Destructive-operation throttle
	v.SetDefault("guard.min-interval", 20) // seconds
}
