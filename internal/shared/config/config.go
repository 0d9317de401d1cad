package config

import (
	"fmt"
	"time"

	"salvage-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	World     WorldConfig
	Stream    StreamConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// WorldConfig drives the sector generator and the simulation loop.
type WorldConfig struct {
	Size            int
	SectorSize      float64
	VisibleRange    int
	TickInterval    time.Duration
	ActivationEvery int
}

type StreamConfig struct {
	Interval time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
	CookieSameSite  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		World:     loadWorldConfig(),
		Stream:    loadStreamConfig(),
		Auth:      loadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadWorldConfig() WorldConfig {
	return WorldConfig{
		Size:            utils.GetEnvInt("WORLD_SIZE", 5),
		SectorSize:      utils.GetEnvFloat("WORLD_SECTOR_SIZE", 1000),
		VisibleRange:    utils.GetEnvInt("WORLD_VISIBLE_RANGE", 2),
		TickInterval:    time.Duration(utils.GetEnvInt("WORLD_TICK_MS", 16)) * time.Millisecond,
		ActivationEvery: utils.GetEnvInt("WORLD_ACTIVATION_EVERY", 1),
	}
}

func loadStreamConfig() StreamConfig {
	return StreamConfig{
		Interval: time.Duration(utils.GetEnvInt("STREAM_INTERVAL_MS", 250)) * time.Millisecond,
	}
}

func loadAuthConfig() AuthConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		CookieSecure:    utils.GetEnvBool("COOKIE_SECURE", environment == "production"),
		CookieSameSite:  utils.GetEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.World.Size < 1 {
		return fmt.Errorf("WORLD_SIZE must be at least 1")
	}

	// sector seeds are gx*1000+gy and stop being unique past this
	if c.World.Size > 1000 {
		return fmt.Errorf("WORLD_SIZE must be at most 1000")
	}

	// content is placed at least 100 units inside each sector edge
	if c.World.SectorSize <= 200 {
		return fmt.Errorf("WORLD_SECTOR_SIZE must be greater than 200")
	}

	if c.World.VisibleRange < 0 {
		return fmt.Errorf("WORLD_VISIBLE_RANGE must not be negative")
	}

	if c.World.TickInterval <= 0 {
		return fmt.Errorf("WORLD_TICK_MS must be positive")
	}

	if c.World.ActivationEvery < 1 {
		return fmt.Errorf("WORLD_ACTIVATION_EVERY must be at least 1")
	}

	if c.Stream.Interval <= 0 {
		return fmt.Errorf("STREAM_INTERVAL_MS must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
