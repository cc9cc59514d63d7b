package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/internal/prompt"
	"github.com/sells-group/mowradar/internal/recommend"
)

var (
	recommendFlags     requestFlags
	recommendCondition string
	recommendTempF     float64
	recommendForecast  []string
)

// recommendation is the output of the recommend command.
type recommendation struct {
	Services []model.Service `json:"services" yaml:"services"`
	Rules    []string        `json:"rules_fired" yaml:"rules_fired"`
}

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Short:   "Rank add-on services for given weather, without any network calls",
	Example: `  mowradar recommend --temp 90 --forecast Hot --forecast Dry --forecast Sunny --flowerbeds=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := recommendFlags.attributes()
		if err != nil {
			return err
		}

		w := model.WeatherSnapshot{Condition: recommendCondition, TemperatureF: recommendTempF}
		for i, c := range recommendForecast {
			w.Forecast = append(w.Forecast, model.ForecastDay{Date: fmt.Sprintf("day-%d", i+1), Condition: c})
		}

		out := recommendation{
			Services: recommend.Recommend(w, attrs),
			Rules:    recommend.Explain(w),
		}
		return writeOutput(cmd.OutOrStdout(), recommendFlags.format, out, func(w io.Writer) error {
			fmt.Fprintf(w, "Services: %s\n", prompt.FormatServices(out.Services))
			_, err := fmt.Fprintf(w, "Rules:    %s\n", strings.Join(out.Rules, ", "))
			return err
		})
	},
}

func init() {
	recommendFlags.register(recommendCmd, false)
	recommendCmd.Flags().StringVar(&recommendCondition, "condition", "", "current condition text")
	recommendCmd.Flags().Float64Var(&recommendTempF, "temp", 70, "current temperature in °F")
	recommendCmd.Flags().StringArrayVar(&recommendForecast, "forecast", nil, "forecast condition text, repeat once per day")
	rootCmd.AddCommand(recommendCmd)
}
