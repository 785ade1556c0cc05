package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const defaultPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
	Credential CredentialConfig `yaml:"credential"`
	Directory  DirectoryConfig  `yaml:"directory"`
	Cache      CacheConfig      `yaml:"cache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `yaml:"allowedOrigins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// CredentialConfig picks the password hashing algorithm.
type CredentialConfig struct {
	Algorithm  string       `yaml:"algorithm" env:"CREDENTIAL_ALGORITHM"`
	BcryptCost int          `yaml:"bcryptCost" env:"CREDENTIAL_BCRYPT_COST"`
	Argon2     Argon2Config `yaml:"argon2"`
}

// Argon2Config tunes argon2id. Memory is in KiB.
type Argon2Config struct {
	Memory      uint32 `yaml:"memory" env:"CREDENTIAL_ARGON2_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"CREDENTIAL_ARGON2_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"CREDENTIAL_ARGON2_PARALLELISM"`
	SaltLength  uint32 `yaml:"saltLength" env:"CREDENTIAL_ARGON2_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"keyLength" env:"CREDENTIAL_ARGON2_KEY_LENGTH"`
}

// DirectoryConfig selects the account store. An empty DSN means in-memory.
type DirectoryConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Migrate  bool           `yaml:"migrate" env:"DIRECTORY_MIGRATE"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn" env:"DIRECTORY_POSTGRES_DSN"`
	MaxConns int32  `yaml:"maxConns" env:"DIRECTORY_POSTGRES_MAX_CONNS"`
	MinConns int32  `yaml:"minConns" env:"DIRECTORY_POSTGRES_MIN_CONNS"`
}

// CacheConfig contains connection information for the record cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED"`
	Addr    string        `yaml:"addr" env:"CACHE_ADDR"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL"`
	Prefix  string        `yaml:"prefix" env:"CACHE_PREFIX"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultPath); err == nil {
		if err := hydrateFromFile(cfg, defaultPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Credential: CredentialConfig{
			Algorithm:  "bcrypt",
			BcryptCost: 10,
			Argon2: Argon2Config{
				Memory:      64 * 1024,
				Iterations:  3,
				Parallelism: 2,
				SaltLength:  16,
				KeyLength:   32,
			},
		},
		Directory: DirectoryConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Migrate: true,
		},
		Cache: CacheConfig{
			TTL:    10 * time.Minute,
			Prefix: "accounts",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not recognised", c.Log.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Credential.Algorithm)) {
	case "", "bcrypt", "argon2id", "argon2":
	default:
		return fmt.Errorf("credential.algorithm %q is not supported", c.Credential.Algorithm)
	}
	if c.Credential.BcryptCost < 0 {
		return errors.New("credential.bcryptCost cannot be negative")
	}
	if c.Directory.Postgres.MaxConns < 0 || c.Directory.Postgres.MinConns < 0 {
		return errors.New("directory.postgres connection limits cannot be negative")
	}
	if c.Directory.Postgres.MaxConns > 0 && c.Directory.Postgres.MinConns > c.Directory.Postgres.MaxConns {
		return errors.New("directory.postgres.minConns cannot exceed maxConns")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when cache is enabled")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	return nil
}
