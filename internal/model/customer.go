package model

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tone is the voice the generated pitch should take.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFunny        Tone = "Funny"
)

// ParseTone accepts a tone name in any case. An empty string selects
// ToneProfessional.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ToneProfessional, nil
	}
	t := Tone(cases.Title(language.English).String(strings.ToLower(s)))
	switch t {
	case ToneProfessional, ToneFunny:
		return t, nil
	default:
		return "", eris.Errorf("model: unknown tone %q", s)
	}
}

// Directive is the tone as it appears inside the prompt.
func (t Tone) Directive() string {
	return strings.ToLower(string(t))
}

// CustomerAttributes describes the property and the requested voice.
type CustomerAttributes struct {
	HasBushes     bool `json:"has_bushes" yaml:"has_bushes"`
	HasFlowerbeds bool `json:"has_flowerbeds" yaml:"has_flowerbeds"`
	Tone          Tone `json:"tone" yaml:"tone"`
}
