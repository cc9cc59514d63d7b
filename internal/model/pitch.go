package model

// PitchPrompt is the fully rendered instruction sent to the text generator.
// Built once per request and never modified.
type PitchPrompt string

// PitchRequest is the input to a single pipeline run.
type PitchRequest struct {
	Query      string             `json:"query" yaml:"query"`
	Attributes CustomerAttributes `json:"attributes" yaml:"attributes"`
}

// NarrationResult is the generated copy plus backend-reported token usage.
type NarrationResult struct {
	Text             string `json:"text" yaml:"text"`
	Model            string `json:"model" yaml:"model"`
	PromptTokens     int64  `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens" yaml:"total_tokens"`
}

// PitchResult is the outcome of a pipeline run. Narration is nil for a
// preview (prompt-only) run.
type PitchResult struct {
	RequestID        string           `json:"request_id" yaml:"request_id"`
	Place            Place            `json:"place" yaml:"place"`
	Weather          WeatherSnapshot  `json:"weather" yaml:"weather"`
	Services         []Service        `json:"services" yaml:"services"`
	Prompt           PitchPrompt      `json:"prompt" yaml:"prompt"`
	Narration        *NarrationResult `json:"narration,omitempty" yaml:"narration,omitempty"`
	EstimatedCostUSD float64          `json:"estimated_cost_usd" yaml:"estimated_cost_usd"`
}
