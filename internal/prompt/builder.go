// Package prompt renders the instruction block that asks a text generator
// for a short add-on pitch. Rendering is pure: identical inputs always
// produce byte-identical prompts.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/mowradar/internal/model"
)

// TalkingPoints is the number of talking points the generator must write.
const TalkingPoints = 2

const persona = `You are a lawn care expert who has mastered "The Psychology of Selling" and "How to Win Friends and Influence People". You are upselling add-on services to a customer who just booked a mow with you.`

// Build renders the pitch prompt for one request. services must already be
// ranked; they are listed in the given order.
func Build(place model.Place, w model.WeatherSnapshot, services []model.Service, attrs model.CustomerAttributes) model.PitchPrompt {
	localRef := place.LocalReference()
	patternRef := place.City
	if patternRef == "" {
		patternRef = localRef
	}

	var b strings.Builder
	b.WriteString(persona + "\n\n")

	fmt.Fprintf(&b, "The customer lives near %s. Current weather is %s, %s°F.\n",
		localRef, w.Condition, FormatTemp(w.TemperatureF))
	fmt.Fprintf(&b, "Here is the detailed %d-day weather outlook they will be experiencing: %s.\n",
		len(w.Forecast), FormatForecast(w.Forecast))
	b.WriteString("Use this to tailor your recommendations to heat, rain, overgrowth, or pest activity.\n\n")

	fmt.Fprintf(&b, "Use a %s tone.\n\n", attrs.Tone.Directive())

	fmt.Fprintf(&b, "The customer has bushes: %t\n", attrs.HasBushes)
	fmt.Fprintf(&b, "The customer has flower beds: %t\n\n", attrs.HasFlowerbeds)

	fmt.Fprintf(&b, "Recommend 1-2 relevant add-on services from this list, which is already in priority order: %s\n",
		FormatServices(services))
	fmt.Fprintf(&b, "If %s or %s is in the list, prioritize it because the customer owns that feature, unless the weather makes it clearly unsuitable.\n\n",
		model.ServiceBushTrimming, model.ServiceFlowerBedWeeding)

	b.WriteString("Mowing is already scheduled. Use persuasive psychology by:\n")
	fmt.Fprintf(&b, "- Referencing common local patterns (like heat, leaf drop, or bugs in %s)\n", patternRef)
	b.WriteString("- Highlighting what they will avoid: \"No more spending weekends tugging at weeds...\"\n")
	b.WriteString("- Adding urgency: \"This is the perfect window before overgrowth kicks in...\"\n")
	b.WriteString("- Using social proof: \"Most of my customers this week have added...\"\n")
	b.WriteString("- Mentioning comfort and safety: \"A safer, mosquito-free yard for kids and pets\"\n")
	b.WriteString("- Suggesting efficiency: \"Bundling it with today's mow saves you time\"\n")
	fmt.Fprintf(&b, "- Use the location name %q at most once, and only if it feels natural. It is a neighborhood or city name, not a street address.\n\n", localRef)

	b.WriteString("Avoid recommending hydration or watering.\n\n")
	fmt.Fprintf(&b, "Write exactly %d short, natural-sounding talking points a rep can say. Use casual, confident language that feels like a helpful conversation, not a script. Avoid overexplaining.\n", TalkingPoints)

	return model.PitchPrompt(b.String())
}

// FormatForecast renders one "{date}: {condition}, high of {max}°F" clause
// per day, joined by "; ", in the order given.
func FormatForecast(days []model.ForecastDay) string {
	clauses := make([]string, len(days))
	for i, d := range days {
		clauses[i] = fmt.Sprintf("%s: %s, high of %s°F", d.Date, d.Condition, FormatTemp(d.MaxTempF))
	}
	return strings.Join(clauses, "; ")
}

// FormatServices joins service names with ", ".
func FormatServices(services []model.Service) string {
	return strings.Join(model.ServiceNames(services), ", ")
}

// FormatTemp prints a temperature in its shortest exact decimal form (91, 78.4).
func FormatTemp(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
