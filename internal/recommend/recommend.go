// Package recommend ranks add-on services from weather signals and the
// customer's yard features.
package recommend

import (
	"strings"

	"github.com/sells-group/mowradar/internal/model"
)

// HeatThresholdF is the current temperature at or above which lawn
// treatment is always recommended.
const HeatThresholdF = 85.0

// Signals is the weather evidence a Rule evaluates.
type Signals struct {
	Text         string // lower-cased forecast conditions joined by spaces
	TemperatureF float64
}

// SignalsFrom extracts rule inputs from a snapshot.
func SignalsFrom(w model.WeatherSnapshot) Signals {
	return Signals{Text: w.ForecastText(), TemperatureF: w.TemperatureF}
}

// Rule adds Service when Match holds. Rules are independent of each other.
type Rule struct {
	Name    string
	Service model.Service
	Match   func(Signals) bool
}

func containsAny(keywords ...string) func(Signals) bool {
	return func(s Signals) bool {
		for _, kw := range keywords {
			if strings.Contains(s.Text, kw) {
				return true
			}
		}
		return false
	}
}

var rules = []Rule{
	{
		Name:    "heat",
		Service: model.ServiceLawnTreatment,
		Match: func(s Signals) bool {
			return s.TemperatureF >= HeatThresholdF || containsAny("hot")(s)
		},
	},
	{Name: "moisture", Service: model.ServiceMosquitoTreatment, Match: containsAny("rain", "thunder", "humid")},
	{Name: "dry", Service: model.ServiceBushTrimming, Match: containsAny("sun", "dry")},
	{Name: "mild", Service: model.ServiceFlowerBedWeeding, Match: containsAny("cloud", "mild", "overcast")},
	{Name: "wind", Service: model.ServiceLeafRemoval, Match: containsAny("wind", "leaves")},
}

// Rules returns a copy of the weather rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Baseline returns the services every request starts from.
func Baseline() []model.Service {
	return []model.Service{model.ServiceLawnTreatment, model.ServiceMosquitoTreatment}
}

// Explain returns the names of the rules that fire for w.
func Explain(w model.WeatherSnapshot) []string {
	sig := SignalsFrom(w)
	var fired []string
	for _, r := range rules {
		if r.Match(sig) {
			fired = append(fired, r.Name)
		}
	}
	return fired
}

// Recommend returns the ranked, de-duplicated services for a request.
// Services tied to features the customer owns lead (bush trimming before
// flower bed weeding); everything else keeps first-seen order. The result
// always contains the baseline services.
func Recommend(w model.WeatherSnapshot, attrs model.CustomerAttributes) []model.Service {
	sig := SignalsFrom(w)

	candidates := Baseline()
	for _, r := range rules {
		if r.Match(sig) {
			candidates = append(candidates, r.Service)
		}
	}

	ranked := dedupe(candidates)
	ranked = exclude(ranked, excluded(attrs))
	return promote(ranked, promoted(attrs))
}

// promoted lists the feature-owned services in lead order.
func promoted(attrs model.CustomerAttributes) []model.Service {
	var out []model.Service
	if attrs.HasBushes {
		out = append(out, model.ServiceBushTrimming)
	}
	if attrs.HasFlowerbeds {
		out = append(out, model.ServiceFlowerBedWeeding)
	}
	return out
}

func excluded(attrs model.CustomerAttributes) map[model.Service]bool {
	out := make(map[model.Service]bool, 2)
	if !attrs.HasBushes {
		out[model.ServiceBushTrimming] = true
	}
	if !attrs.HasFlowerbeds {
		out[model.ServiceFlowerBedWeeding] = true
	}
	return out
}

func dedupe(in []model.Service) []model.Service {
	seen := make(map[model.Service]bool, len(in))
	out := make([]model.Service, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func exclude(in []model.Service, drop map[model.Service]bool) []model.Service {
	out := make([]model.Service, 0, len(in))
	for _, s := range in {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}

// promote stable-partitions in so members of lead come first, in lead's
// order; the rest keep their relative order. Lead entries absent from in
// are skipped.
func promote(in []model.Service, lead []model.Service) []model.Service {
	present := make(map[model.Service]bool, len(in))
	for _, s := range in {
		present[s] = true
	}
	isLead := make(map[model.Service]bool, len(lead))

	out := make([]model.Service, 0, len(in))
	for _, s := range lead {
		isLead[s] = true
		if present[s] {
			out = append(out, s)
		}
	}
	for _, s := range in {
		if !isLead[s] {
			out = append(out, s)
		}
	}
	return out
}
