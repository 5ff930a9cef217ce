package commands

import (
	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/internal/errors"
	"github.com/mapbox-community/mts-go/internal/output"
	"github.com/mapbox-community/mts-go/pkg/mts"
)

// EstimateAreaCommand returns the estimate-area command.
func EstimateAreaCommand() *cobra.Command {
	var flags commonFlags
	var precision string
	var force1cm, noValidation bool

	cmd := &cobra.Command{
		Use:   "estimate-area <file> [file...]",
		Short: "Estimate the tiled area of GeoJSON features",
		Long: "Estimate the total tiled area, in square kilometers, that the " +
			"features in the given GeoJSON files would cover at the chosen " +
			"precision. The estimate approximates the area Mapbox bills " +
			"tileset processing against.",
		Example: `  mts estimate-area data.geojson --precision 10m
  mts estimate-area data.geojson --precision 1cm --force-1cm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}

			features, err := mts.LoadFeatures(args)
			if err != nil {
				return errors.NewValidationError(err.Error(),
					"Each file must contain a single GeoJSON feature.")
			}

			est, err := mts.EstimateArea(features, mts.EstimateAreaOptions{
				Precision:      precision,
				Force1cm:       force1cm,
				SkipValidation: noValidation,
			})
			if err != nil {
				return errors.NewValidationError(err.Error(),
					"Pass one of --precision 10m, 1m, 30cm or 1cm; 1cm also needs --force-1cm.")
			}

			switch cfg.OutputFormat {
			case "csv":
				return output.PrintCSV(
					[]string{"km2", "precision", "pricing_docs"},
					[][]string{{est.KM2, est.Precision, est.PricingDocs}})
			default:
				// The tilesets-cli prints the estimate as JSON regardless
				// of format, so table falls through to JSON here too.
				return output.PrintJSON(est)
			}
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&precision, "precision", "", "Estimate precision: 10m, 1m, 30cm or 1cm (required)")
	cmd.Flags().BoolVar(&force1cm, "force-1cm", false, "Acknowledge the cost implications of 1cm precision")
	cmd.Flags().BoolVar(&noValidation, "no-validation", false, "Skip local GeoJSON validation")
	_ = cmd.MarkFlagRequired("precision")
	return cmd
}
