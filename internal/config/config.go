package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigPathEnvVar points at an optional YAML file layered under the environment
const ConfigPathEnvVar = "CONFIG_PATH"

const (
	keyEnvironment       = "ENV"
	keyLogLevel          = "LOG_LEVEL"
	keyHTTPTimeout       = "HTTP_TIMEOUT"
	keyMapsAPIKey        = "GOOGLE_MAPS_API_KEY"
	keyMapsBaseURL       = "MAPS_BASE_URL"
	keyMapsLanguage      = "MAPS_LANGUAGE"
	keyMapsRegion        = "MAPS_REGION"
	keyMapsRPS           = "MAPS_REQUESTS_PER_SECOND"
	keyPort              = "PORT"
	keyCORSOrigins       = "CORS_ORIGINS"
	keyRateLimitRequests = "RATE_LIMIT_REQUESTS"
	keyRateLimitWindow   = "RATE_LIMIT_WINDOW"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration

	// Maps API
	MapsAPIKey            string
	MapsBaseURL           string
	MapsLanguage          string
	MapsRegion            string
	MapsRequestsPerSecond float64

	// Local server
	Port              int
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithMapsAPIKey(key string) Option {
	return func(c *Config) {
		c.MapsAPIKey = key
	}
}

func WithMapsBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.MapsBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithMapsLocale sets the language and region bias sent with every maps query
func WithMapsLocale(language, region string) Option {
	return func(c *Config) {
		c.MapsLanguage = language
		c.MapsRegion = region
	}
}

func WithMapsRequestsPerSecond(rps float64) Option {
	return func(c *Config) {
		c.MapsRequestsPerSecond = rps
	}
}

func WithPort(port int) Option {
	return func(c *Config) {
		c.Port = port
	}
}

func WithCORSOrigins(origins []string) Option {
	return func(c *Config) {
		c.CORSOrigins = origins
	}
}

func WithRateLimit(requests int, window time.Duration) Option {
	return func(c *Config) {
		c.RateLimitRequests = requests
		c.RateLimitWindow = window
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:           "production",
		LogLevel:              zerolog.InfoLevel,
		HTTPTimeout:           10 * time.Second,
		MapsBaseURL:           "https://maps.googleapis.com",
		MapsLanguage:          "ja",
		MapsRegion:            "jp",
		MapsRequestsPerSecond: 10,
		Port:                  3000,
		CORSOrigins:           []string{"*"},
		RateLimitRequests:     60,
		RateLimitWindow:       time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

// HasMapsAPIKey reports whether upstream calls can be made at all
func (c *Config) HasMapsAPIKey() bool {
	return strings.TrimSpace(c.MapsAPIKey) != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(optionsFrom(os.LookupEnv)...)
}

// Load layers the optional YAML file named by CONFIG_PATH under the environment.
// File keys use the lower-cased variable names, e.g. google_maps_api_key.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	return New(optionsFrom(koanfLookup(k))...), nil
}

type lookupFunc func(key string) (string, bool)

func koanfLookup(k *koanf.Koanf) lookupFunc {
	return func(key string) (string, bool) {
		path := strings.ToLower(key)
		if !k.Exists(path) {
			return "", false
		}
		switch v := k.Get(path).(type) {
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				parts = append(parts, fmt.Sprint(p))
			}
			return strings.Join(parts, ","), true
		case nil:
			return "", false
		default:
			return fmt.Sprint(v), true
		}
	}
}

func optionsFrom(lookup lookupFunc) []Option {
	get := func(key, defaultValue string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return defaultValue
	}

	opts := []Option{
		WithEnvironment(get(keyEnvironment, "production")),
		WithLogLevel(get(keyLogLevel, "info")),
		WithHTTPTimeout(parseDuration(get(keyHTTPTimeout, ""), 10*time.Second)),
		WithMapsAPIKey(get(keyMapsAPIKey, "")),
		WithMapsLocale(get(keyMapsLanguage, "ja"), get(keyMapsRegion, "jp")),
		WithMapsRequestsPerSecond(parseFloat(get(keyMapsRPS, ""), 10)),
		WithPort(parseInt(get(keyPort, ""), 3000)),
		WithRateLimit(
			parseInt(get(keyRateLimitRequests, ""), 60),
			parseDuration(get(keyRateLimitWindow, ""), time.Minute),
		),
	}

	if baseURL := get(keyMapsBaseURL, ""); baseURL != "" {
		opts = append(opts, WithMapsBaseURL(baseURL))
	}
	if origins := get(keyCORSOrigins, ""); origins != "" {
		opts = append(opts, WithCORSOrigins(splitList(origins)))
	}

	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parseDuration(os.Getenv(key), defaultValue)
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func parseFloat(value string, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
