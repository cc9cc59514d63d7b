package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocode    GeocodeConfig    `yaml:"geocode" mapstructure:"geocode"`
	Weather    WeatherConfig    `yaml:"weather" mapstructure:"weather"`
	Narration  NarrationConfig  `yaml:"narration" mapstructure:"narration"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	StreetView StreetViewConfig `yaml:"streetview" mapstructure:"streetview"`
	Pricing    PricingConfig    `yaml:"pricing" mapstructure:"pricing"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures forward (OpenCage) and reverse (Nominatim) geocoding.
type GeocodeConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	CountryCode string  `yaml:"country_code" mapstructure:"country_code"`
	ReverseURL  string  `yaml:"reverse_url" mapstructure:"reverse_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	ReverseRPS  float64 `yaml:"reverse_rps" mapstructure:"reverse_rps"`
}

// WeatherConfig configures WeatherAPI.com.
type WeatherConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// NarrationConfig selects the text-generation backend and its parameters.
type NarrationConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // "openai" or "anthropic"
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OpenAIConfig configures the OpenAI client.
type OpenAIConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	Organization string `yaml:"organization" mapstructure:"organization"`
}

// AnthropicConfig configures the Anthropic client.
type AnthropicConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// StreetViewConfig configures the Street View Static API.
type StreetViewConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Size    string `yaml:"size" mapstructure:"size"`
}

// PricingConfig holds per-model pricing overrides.
type PricingConfig struct {
	Models map[string]ModelPricing `yaml:"models" mapstructure:"models"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// HTTPConfig configures outbound HTTP clients.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// secretEnv maps each secret key to the environment variables it is read
// from, in priority order.
var secretEnv = map[string][]string{
	"geocode.key":    {"MOWRADAR_GEOCODE_KEY", "GEOCODE_KEY"},
	"weather.key":    {"MOWRADAR_WEATHER_KEY", "WEATHERAPI_KEY"},
	"openai.key":     {"MOWRADAR_OPENAI_KEY", "OPENAI_API_KEY"},
	"anthropic.key":  {"MOWRADAR_ANTHROPIC_KEY", "ANTHROPIC_API_KEY"},
	"streetview.key": {"MOWRADAR_STREETVIEW_KEY", "GOOGLE_MAPS_KEY"},
}

// Load reads configuration from file and environment. A .env file in the
// working directory, if present, is loaded first; it never overrides
// variables already set.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MOWRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range secretEnv {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("geocode.base_url", "https://api.opencagedata.com/geocode/v1/json")
	v.SetDefault("geocode.country_code", "us")
	v.SetDefault("geocode.reverse_url", "https://nominatim.openstreetmap.org/reverse")
	v.SetDefault("geocode.user_agent", "MowRadarBot")
	v.SetDefault("geocode.reverse_rps", 1.0)
	v.SetDefault("weather.base_url", "http://api.weatherapi.com/v1")
	v.SetDefault("narration.provider", "openai")
	v.SetDefault("narration.model", "gpt-4o")
	v.SetDefault("narration.temperature", 0.85)
	v.SetDefault("narration.max_tokens", 500)
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.organization", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("streetview.base_url", "https://maps.googleapis.com/maps/api/streetview")
	v.SetDefault("streetview.size", "600x300")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrap(err, "config: stat .env")
	}
	if err := godotenv.Load(path); err != nil {
		return eris.Wrap(err, "config: load .env")
	}
	return nil
}

// Validate checks that the settings a command mode needs are present.
// Modes: "pitch" (full run), "preview" (no narration), "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "pitch", "serve":
		errs = append(errs, c.lookupErrors()...)
		errs = append(errs, c.narrationErrors()...)
		if mode == "serve" && c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "preview":
		errs = append(errs, c.lookupErrors()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.HTTP.TimeoutSecs <= 0 {
		errs = append(errs, "http.timeout_secs must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) lookupErrors() []string {
	var errs []string
	if c.Geocode.Key == "" {
		errs = append(errs, "geocode.key is required")
	}
	if c.Weather.Key == "" {
		errs = append(errs, "weather.key is required")
	}
	if c.Geocode.ReverseRPS <= 0 {
		errs = append(errs, "geocode.reverse_rps must be > 0")
	}
	return errs
}

func (c *Config) narrationErrors() []string {
	var errs []string
	switch c.Narration.Provider {
	case "openai":
		if c.OpenAI.Key == "" {
			errs = append(errs, "openai.key is required")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required")
		}
	default:
		errs = append(errs, "narration.provider must be openai or anthropic")
	}
	if c.Narration.Model == "" {
		errs = append(errs, "narration.model is required")
	}
	if c.Narration.Temperature < 0 || c.Narration.Temperature > 2 {
		errs = append(errs, "narration.temperature must be between 0 and 2")
	}
	if c.Narration.MaxTokens <= 0 {
		errs = append(errs, "narration.max_tokens must be > 0")
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
