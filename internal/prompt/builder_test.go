package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mowradar/internal/model"
)

func testPlace() model.Place {
	return model.Place{
		Latitude:       37.16,
		Longitude:      -93.29,
		FormattedLabel: "Springfield, MO 65807, United States of America",
		City:           "Springfield",
		County:         "Greene",
		State:          "MO",
	}
}

func testWeather() model.WeatherSnapshot {
	return model.WeatherSnapshot{
		Condition:    "Sunny",
		TemperatureF: 90,
		Forecast: []model.ForecastDay{
			{Date: "2024-07-01", Condition: "Sunny", MaxTempF: 91},
			{Date: "2024-07-02", Condition: "Rain", MaxTempF: 78},
			{Date: "2024-07-03", Condition: "Partly cloudy", MaxTempF: 84.5},
		},
	}
}

func testServices() []model.Service {
	return []model.Service{model.ServiceBushTrimming, model.ServiceLawnTreatment, model.ServiceMosquitoTreatment}
}

func TestFormatForecast(t *testing.T) {
	t.Parallel()

	got := FormatForecast([]model.ForecastDay{
		{Date: "2024-07-01", Condition: "Sunny", MaxTempF: 91},
		{Date: "2024-07-02", Condition: "Rain", MaxTempF: 78},
	})
	assert.Equal(t, "2024-07-01: Sunny, high of 91°F; 2024-07-02: Rain, high of 78°F", got)
}

func TestFormatForecast_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", FormatForecast(nil))
}

func TestFormatTemp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "91", FormatTemp(91))
	assert.Equal(t, "78.4", FormatTemp(78.4))
	assert.Equal(t, "-3", FormatTemp(-3))
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	attrs := model.CustomerAttributes{HasBushes: true, HasFlowerbeds: false, Tone: model.ToneProfessional}

	first := Build(testPlace(), testWeather(), testServices(), attrs)
	for range 10 {
		assert.Equal(t, first, Build(testPlace(), testWeather(), testServices(), attrs))
	}
}

func TestBuild_Contents(t *testing.T) {
	t.Parallel()

	attrs := model.CustomerAttributes{HasBushes: true, HasFlowerbeds: false, Tone: model.ToneFunny}
	p := string(Build(testPlace(), testWeather(), testServices(), attrs))

	assert.Contains(t, p, "lawn care expert")
	assert.Contains(t, p, "The customer lives near Springfield.")
	assert.Contains(t, p, "Current weather is Sunny, 90°F.")
	assert.Contains(t, p, "2024-07-01: Sunny, high of 91°F; 2024-07-02: Rain, high of 78°F; 2024-07-03: Partly cloudy, high of 84.5°F")
	assert.Contains(t, p, "Use a funny tone.")
	assert.Contains(t, p, "The customer has bushes: true")
	assert.Contains(t, p, "The customer has flower beds: false")
	assert.Contains(t, p, "Bush Trimming, Lawn Treatment, Mosquito Treatment")
	assert.Contains(t, p, "unless the weather makes it clearly unsuitable")
	assert.Contains(t, p, "bugs in Springfield")
	assert.Contains(t, p, "what they will avoid")
	assert.Contains(t, p, "urgency")
	assert.Contains(t, p, "social proof")
	assert.Contains(t, p, "comfort and safety")
	assert.Contains(t, p, `"Springfield" at most once`)
	assert.Contains(t, p, "Write exactly 2 short")
	assert.Contains(t, p, "Avoid recommending hydration or watering.")
}

func TestBuild_UsesRankedOrder(t *testing.T) {
	t.Parallel()

	attrs := model.CustomerAttributes{HasBushes: true, HasFlowerbeds: true, Tone: model.ToneProfessional}
	ranked := []model.Service{model.ServiceBushTrimming, model.ServiceFlowerBedWeeding, model.ServiceLawnTreatment}
	reordered := []model.Service{model.ServiceLawnTreatment, model.ServiceBushTrimming, model.ServiceFlowerBedWeeding}

	a := string(Build(testPlace(), testWeather(), ranked, attrs))
	b := string(Build(testPlace(), testWeather(), reordered, attrs))

	assert.Contains(t, a, "priority order: Bush Trimming, Flower Bed Weeding, Lawn Treatment\n")
	assert.NotEqual(t, a, b)
}

func TestBuild_FallbackReference(t *testing.T) {
	t.Parallel()

	p := string(Build(model.Place{}, testWeather(), testServices(), model.CustomerAttributes{Tone: model.ToneProfessional}))

	assert.Contains(t, p, "The customer lives near your area.")
	assert.Contains(t, p, "bugs in your area")
	assert.Contains(t, p, `"your area" at most once`)
}

func TestBuild_NeighborhoodPreferredOverCity(t *testing.T) {
	t.Parallel()

	place := testPlace()
	place.Neighborhood = "Rountree"
	p := string(Build(place, testWeather(), testServices(), model.CustomerAttributes{Tone: model.ToneProfessional}))

	assert.Contains(t, p, "lives near Rountree.")
	// Local patterns still reference the city.
	assert.Contains(t, p, "bugs in Springfield")
	assert.Equal(t, 1, strings.Count(p, `"Rountree"`))
}

func TestBuild_ChangesWithInputs(t *testing.T) {
	t.Parallel()

	base := model.CustomerAttributes{HasBushes: true, Tone: model.ToneProfessional}
	p1 := Build(testPlace(), testWeather(), testServices(), base)

	other := base
	other.Tone = model.ToneFunny
	p2 := Build(testPlace(), testWeather(), testServices(), other)

	require.NotEqual(t, p1, p2)
}
