package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "bcrypt", cfg.Credential.Algorithm)
	require.Empty(t, cfg.Directory.Postgres.DSN)
	require.False(t, cfg.Cache.Enabled)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
http:
  address: ":9000"
credential:
  algorithm: argon2id
  argon2:
    memory: 8192
directory:
  postgres:
    dsn: postgres://file/db
    maxConns: 8
cache:
  enabled: true
  addr: localhost:6379
  ttl: 30s
`))
	t.Setenv("DIRECTORY_POSTGRES_DSN", "postgres://env/db")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, "argon2id", cfg.Credential.Algorithm)
	require.Equal(t, uint32(8192), cfg.Credential.Argon2.Memory)
	require.Equal(t, uint32(3), cfg.Credential.Argon2.Iterations, "unset fields keep defaults")
	require.Equal(t, "postgres://env/db", cfg.Directory.Postgres.DSN)
	require.Equal(t, int32(8), cfg.Directory.Postgres.MaxConns)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, time.Minute, cfg.Cache.TTL)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))
	t.Setenv("CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":      func(c *Config) { c.HTTP.Address = "" },
		"bad log level":      func(c *Config) { c.Log.Level = "loud" },
		"bad algorithm":      func(c *Config) { c.Credential.Algorithm = "md5" },
		"negative cost":      func(c *Config) { c.Credential.BcryptCost = -1 },
		"min over max":       func(c *Config) { c.Directory.Postgres.MaxConns, c.Directory.Postgres.MinConns = 2, 3 },
		"cache without addr": func(c *Config) { c.Cache.Enabled = true },
		"negative cache ttl": func(c *Config) { c.Cache.TTL = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}
