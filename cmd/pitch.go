package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/internal/pipeline"
	"github.com/sells-group/mowradar/pkg/streetview"
)

var (
	pitchFlags        requestFlags
	pitchStreetViewTo string
)

var pitchCmd = &cobra.Command{
	Use:   "pitch [address]",
	Short: "Generate a weather-aware add-on pitch for a customer",
	Example: `  mowradar pitch --query 65807 --flowerbeds=false
  mowradar pitch "1600 Pennsylvania Ave, Washington DC" --tone funny --format text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := pitchFlags.request(args)
		if err != nil {
			return err
		}

		p, err := initPipeline(cfg, "pitch")
		if err != nil {
			return err
		}

		res, err := p.Run(cmd.Context(), req)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), pipeline.Describe(err))
			return err
		}

		if pitchStreetViewTo != "" {
			saveStreetView(cmd.Context(), newStreetView(cfg), res.Place, pitchStreetViewTo)
		}

		return writeOutput(cmd.OutOrStdout(), pitchFlags.format, res, func(w io.Writer) error {
			return writeResultText(w, res)
		})
	},
}

// saveStreetView writes the property image to path. Failures are logged and
// never fail the pitch.
func saveStreetView(ctx context.Context, sv streetview.Client, place model.Place, path string) {
	log := zap.L().With(zap.String("path", path))
	if sv == nil {
		log.Warn("pitch: streetview.key not configured, skipping image")
		return
	}
	img, err := sv.Image(ctx, place.Latitude, place.Longitude)
	if err != nil {
		log.Warn("pitch: street view image failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		log.Warn("pitch: write street view image", zap.Error(eris.Wrap(err, "write file")))
		return
	}
	log.Info("pitch: street view image saved", zap.Int("bytes", len(img)))
}

func init() {
	pitchFlags.register(pitchCmd, true)
	pitchCmd.Flags().StringVar(&pitchStreetViewTo, "streetview-out", "", "also save a Street View image of the property to this file")
	rootCmd.AddCommand(pitchCmd)
}
