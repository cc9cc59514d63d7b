package cost

import "strings"

// Rates holds per-model token pricing, keyed by model ID.
type Rates struct {
	Models map[string]ModelRate `yaml:"models" mapstructure:"models"`
}

// ModelRate holds per-model token pricing (USD per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Calculator computes costs for text-generation usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Estimate returns the USD cost of one generation call. Unknown models cost 0.
func (c *Calculator) Estimate(model string, promptTokens, completionTokens int64) float64 {
	rate, ok := c.Rate(model)
	if !ok {
		return 0
	}

	inCost := (float64(promptTokens) / 1e6) * rate.Input
	outCost := (float64(completionTokens) / 1e6) * rate.Output
	return inCost + outCost
}

// Rate returns the configured rate for model. A dated snapshot ID such as
// "gpt-4o-2024-08-06" falls back to the longest key it extends.
func (c *Calculator) Rate(model string) (ModelRate, bool) {
	if rate, ok := c.rates.Models[model]; ok {
		return rate, true
	}

	best := ""
	for key := range c.rates.Models {
		if len(key) > len(best) && strings.HasPrefix(model, key+"-") {
			best = key
		}
	}
	if best == "" {
		return ModelRate{}, false
	}
	return c.rates.Models[best], true
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"gpt-4o":                     {Input: 5.00, Output: 15.00},
			"gpt-4o-mini":                {Input: 0.15, Output: 0.60},
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
			"claude-opus-4-6":            {Input: 15.00, Output: 75.00},
		},
	}
}

// Merge overlays override onto base. Models present in both take override's rate.
func Merge(base, override Rates) Rates {
	out := Rates{Models: make(map[string]ModelRate, len(base.Models)+len(override.Models))}
	for k, v := range base.Models {
		out.Models[k] = v
	}
	for k, v := range override.Models {
		out.Models[k] = v
	}
	return out
}
