package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/internal/prompt"
)

// requestFlags are shared by every command that builds a PitchRequest.
type requestFlags struct {
	query      string
	tone       string
	bushes     bool
	flowerbeds bool
	format     string
}

func (f *requestFlags) register(cmd *cobra.Command, withQuery bool) {
	if withQuery {
		cmd.Flags().StringVar(&f.query, "query", "", "customer address or ZIP code")
	}
	cmd.Flags().StringVar(&f.tone, "tone", string(model.ToneProfessional), "pitch tone: Professional or Funny")
	cmd.Flags().BoolVar(&f.bushes, "bushes", true, "property has bushes (--bushes=false to turn off)")
	cmd.Flags().BoolVar(&f.flowerbeds, "flowerbeds", true, "property has flower beds (--flowerbeds=false to turn off)")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json, yaml or text")
}

// attributes parses the tone and feature flags.
func (f *requestFlags) attributes() (model.CustomerAttributes, error) {
	tone, err := model.ParseTone(f.tone)
	if err != nil {
		return model.CustomerAttributes{}, err
	}
	return model.CustomerAttributes{
		HasBushes:     f.bushes,
		HasFlowerbeds: f.flowerbeds,
		Tone:          tone,
	}, nil
}

// request builds a PitchRequest from flags; a positional argument may stand
// in for --query.
func (f *requestFlags) request(args []string) (model.PitchRequest, error) {
	query := f.query
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return model.PitchRequest{}, eris.New("an address or ZIP is required (--query)")
	}
	attrs, err := f.attributes()
	if err != nil {
		return model.PitchRequest{}, err
	}
	return model.PitchRequest{Query: query, Attributes: attrs}, nil
}

// writeOutput renders v as json or yaml, or calls text for the plain format.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "text":
		return text(w)
	default:
		return eris.Errorf("unknown output format %q", format)
	}
}

// writeResultText prints the human-readable form of a pitch or preview.
func writeResultText(w io.Writer, res *model.PitchResult) error {
	fmt.Fprintf(w, "Location: %s (%s)\n", res.Place.FormattedLabel, res.Place.LocalReference())
	fmt.Fprintf(w, "Weather:  %s, %s°F\n", res.Weather.Condition, prompt.FormatTemp(res.Weather.TemperatureF))
	fmt.Fprintf(w, "Outlook:  %s\n", prompt.FormatForecast(res.Weather.Forecast))
	fmt.Fprintf(w, "Services: %s\n", prompt.FormatServices(res.Services))

	if res.Narration == nil {
		fmt.Fprintf(w, "\n%s\n", res.Prompt)
		return nil
	}

	fmt.Fprintf(w, "\n%s\n\n", res.Narration.Text)
	_, err := fmt.Fprintf(w, "Tokens: %d prompt, %d completion (%s). Estimated cost: $%.5f\n",
		res.Narration.PromptTokens, res.Narration.CompletionTokens, res.Narration.Model, res.EstimatedCostUSD)
	return err
}
