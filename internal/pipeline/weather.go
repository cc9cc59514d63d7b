package pipeline

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/pkg/weatherapi"
)

// WeatherContext fetches current conditions and the short-term forecast for
// a coordinate pair.
type WeatherContext interface {
	Fetch(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error)
}

// WeatherAPIContext implements WeatherContext over WeatherAPI.com.
type WeatherAPIContext struct {
	client weatherapi.Client
}

// NewWeatherAPIContext creates a WeatherAPIContext.
func NewWeatherAPIContext(client weatherapi.Client) *WeatherAPIContext {
	return &WeatherAPIContext{client: client}
}

// Fetch implements WeatherContext. Current conditions and the forecast are
// requested concurrently; either failing fails the fetch.
func (w *WeatherAPIContext) Fetch(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error) {
	q := weatherapi.Coordinates(lat, lon)

	var (
		current  *weatherapi.CurrentResponse
		forecast *weatherapi.ForecastResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = w.client.Current(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = w.client.Forecast(gctx, q, model.ForecastDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream(StageWeather, err)
	}

	days := make([]model.ForecastDay, 0, len(forecast.Forecast.ForecastDay))
	for _, fd := range forecast.Forecast.ForecastDay {
		days = append(days, model.ForecastDay{
			Date:      fd.Date,
			Condition: fd.Day.Condition.Text,
			MaxTempF:  fd.Day.MaxTempF,
		})
	}
	// ISO dates sort lexically.
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	if len(days) < model.ForecastDays {
		return nil, upstream(StageWeather,
			eris.Errorf("weather: forecast has %d days, want %d", len(days), model.ForecastDays))
	}

	return &model.WeatherSnapshot{
		Condition:    current.Current.Condition.Text,
		TemperatureF: current.Current.TempF,
		Forecast:     days[:model.ForecastDays],
	}, nil
}
