package model

import "strings"

// ForecastDays is the fixed length of a snapshot's forecast.
const ForecastDays = 3

// ForecastDay is one day of the short-term outlook.
type ForecastDay struct {
	Date      string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Condition string  `json:"condition" yaml:"condition"`
	MaxTempF  float64 `json:"max_temp_f" yaml:"max_temp_f"`
}

// WeatherSnapshot holds current conditions and the forecast, ordered by date
// ascending. Temperatures are Fahrenheit end to end.
type WeatherSnapshot struct {
	Condition    string        `json:"condition" yaml:"condition"`
	TemperatureF float64       `json:"temperature_f" yaml:"temperature_f"`
	Forecast     []ForecastDay `json:"forecast" yaml:"forecast"`
}

// ForecastText concatenates every forecast condition, lower-cased, for
// keyword matching.
func (w WeatherSnapshot) ForecastText() string {
	texts := make([]string, len(w.Forecast))
	for i, d := range w.Forecast {
		texts[i] = d.Condition
	}
	return strings.ToLower(strings.Join(texts, " "))
}
