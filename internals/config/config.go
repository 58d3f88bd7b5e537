package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the signing key used when none is configured.
// Servers log a warning when they start with it.
const DefaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Server struct {
		Host            string        `yaml:"host" env:"HELLO_HOST" env-default:"127.0.0.1"`
		Port            int           `yaml:"port" env:"HELLO_PORT" env-default:"3000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HELLO_READ_TIMEOUT" env-default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HELLO_WRITE_TIMEOUT" env-default:"15s"`
		IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HELLO_IDLE_TIMEOUT" env-default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HELLO_SHUTDOWN_TIMEOUT" env-default:"5s"`
		AllowedOrigins  []string      `yaml:"allowed_origins" env:"HELLO_ALLOWED_ORIGINS" env-default:"*"`
	} `yaml:"server"`

	Auth struct {
		JWTSecret       string        `yaml:"jwt_secret" env:"HELLO_JWT_SECRET"`
		TokenTTL        time.Duration `yaml:"token_ttl" env:"HELLO_TOKEN_TTL" env-default:"1h"`
		SessionCapacity int           `yaml:"session_capacity" env:"HELLO_SESSION_CAPACITY"` // 0 keeps every session until logout
		PasswordCost    int           `yaml:"password_cost" env:"HELLO_PASSWORD_COST" env-default:"10"`
	} `yaml:"auth"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"HELLO_SQLITE_PATH"`
	} `yaml:"database"`

	Render struct {
		LegacyUnescaped bool `yaml:"legacy_unescaped" env:"HELLO_LEGACY_UNESCAPED"`
	} `yaml:"render"`

	Log struct {
		Level  string `yaml:"level" env:"HELLO_LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"HELLO_LOG_FORMAT" env-default:"text"`
	} `yaml:"log"`
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UsesDefaultSecret reports whether the JWT secret was left unconfigured.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == DefaultJWTSecret
}

// Load reads configuration from configPath, falling back to CONFIG_PATH.
// With neither set only the environment and defaults are used.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DefaultJWTSecret
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.Auth.SessionCapacity < 0 {
		return errors.New("session_capacity must not be negative")
	}
	return nil
}

// loadDotEnv exports variables from path if the file exists.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
