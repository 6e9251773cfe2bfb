package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Demo      DemoConfig
	Latency   LatencyConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// DemoConfig carries the fixed accounts the mock auth backend recognizes.
// Login succeeds only for DemoEmail/DemoPassword; register fails only for
// ExistingEmail. There is no account store behind these.
type DemoConfig struct {
	DemoEmail     string
	DemoPassword  string
	ExistingEmail string
}

// LatencyConfig controls the simulated network round-trip of the mock
// services. Tests set both to zero.
type LatencyConfig struct {
	Auth      time.Duration
	Contracts time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// SessionConfig selects where the single credential slot lives. Path is
// only used by the file-backed store.
type SessionConfig struct {
	Backend string // "memory" | "file" | "redis"
	Path    string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("JWT_TOKEN_TTL", 60)
	viper.SetDefault("DEMO_EMAIL", "user@example.com")
	viper.SetDefault("DEMO_PASSWORD", "password123")
	viper.SetDefault("DEMO_EXISTING_EMAIL", "exists@example.com")
	viper.SetDefault("AUTH_LATENCY_MS", 500)
	viper.SetDefault("CONTRACTS_LATENCY_MS", 800)
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL")) * time.Minute,
		},
		Demo: DemoConfig{
			DemoEmail:     viper.GetString("DEMO_EMAIL"),
			DemoPassword:  viper.GetString("DEMO_PASSWORD"),
			ExistingEmail: viper.GetString("DEMO_EXISTING_EMAIL"),
		},
		Latency: LatencyConfig{
			Auth:      time.Duration(viper.GetInt("AUTH_LATENCY_MS")) * time.Millisecond,
			Contracts: time.Duration(viper.GetInt("CONTRACTS_LATENCY_MS")) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Session: SessionConfig{
			Backend: viper.GetString("SESSION_BACKEND"),
			Path:    viper.GetString("SESSION_PATH"),
		},
	}

	// Basic validation. Tokens are minted with this secret but decoding never
	// verifies the signature; the secret only matters for texture of the token.
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; using built-in demo secret")
		cfg.JWT.Secret = "clauselens-demo-secret"
	}

	return cfg, nil
}
