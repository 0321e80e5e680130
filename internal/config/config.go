package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Endpoints EndpointConfig
	SEI       SEIConfig
	Outbound  OutboundConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// EndpointConfig holds the base URLs of the three upstream services.
type EndpointConfig struct {
	UserAPI     string `envconfig:"USER_API_BASE" default:"https://api-usr-controller.jaru.ro.gov.br"`
	SEIWS       string `envconfig:"SEI_WS_BASE" default:"https://webseiapi.jaru.ro.gov.br"`
	Integration string `envconfig:"INTEGRA_BASE" default:"https://integracaoseipublica.jaru.ro.gov.br/api"`
}

// SEIConfig holds the fixed identifiers the SEI web service expects on
// every request envelope.
type SEIConfig struct {
	SystemAcronym string `envconfig:"SEI_SYSTEM_ACRONYM" default:"APIWSSEI"`
	ServiceID     string `envconfig:"SEI_SERVICE_ID" default:"consultarSEIJARU"`
	SeriesID      string `envconfig:"SEI_SERIES_ID" default:"622"`
}

// OutboundConfig holds outbound HTTP client configuration.
type OutboundConfig struct {
	TimeoutSeconds int     `envconfig:"OUTBOUND_TIMEOUT_SECONDS" default:"30"`
	MaxRetries     int     `envconfig:"OUTBOUND_MAX_RETRIES" default:"0"`
	RateLimitRPS   float64 `envconfig:"OUTBOUND_RATE_LIMIT_RPS" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds inbound rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Endpoints: EndpointConfig{
			UserAPI:     "https://api-usr-controller.jaru.ro.gov.br",
			SEIWS:       "https://webseiapi.jaru.ro.gov.br",
			Integration: "https://integracaoseipublica.jaru.ro.gov.br/api",
		},
		SEI: SEIConfig{
			SystemAcronym: "APIWSSEI",
			ServiceID:     "consultarSEIJARU",
			SeriesID:      "622",
		},
		Outbound: OutboundConfig{
			TimeoutSeconds: 30,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}
