package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/accounts/internal/domain/account"
	"github.com/yanqian/accounts/internal/infra/config"
	"github.com/yanqian/accounts/internal/infra/credential"
	"github.com/yanqian/accounts/internal/infra/userrepo"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideDirectory_MemoryWithoutDSN(t *testing.T) {
	dir, cleanup, err := provideDirectory(&config.Config{}, newTestLogger())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &userrepo.MemoryRepository{}, dir)
}

func TestProvideDirectory_BadDSNFailsFast(t *testing.T) {
	cfg := &config.Config{Directory: config.DirectoryConfig{Postgres: config.PostgresConfig{DSN: "postgres://user@host:notaport/db"}}}

	_, _, err := provideDirectory(cfg, newTestLogger())
	require.Error(t, err)
}

func TestProvideDirectory_BadCacheFallsBack(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: true, Addr: "valkey://:bad-port"}}

	dir, cleanup, err := provideDirectory(cfg, newTestLogger())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &userrepo.MemoryRepository{}, dir)
	require.NoError(t, dir.Save(context.Background(), account.Record{ID: "1", Email: "a@x.com", PasswordHash: "h"}))
}

func TestProvideCredentialVerifier(t *testing.T) {
	cfg := &config.Config{Credential: config.CredentialConfig{Algorithm: "argon2id", Argon2: config.Argon2Config{Memory: 8192, Iterations: 1, Parallelism: 1}}}

	verifier, err := provideCredentialVerifier(provideCredentialConfig(cfg))
	require.NoError(t, err)
	require.IsType(t, &credential.Argon2Verifier{}, verifier)

	_, err = provideCredentialVerifier(credential.Config{Algorithm: "plaintext"})
	require.Error(t, err)
}

func TestBuildValkeyOptions(t *testing.T) {
	opt, err := buildValkeyOptions(&config.Config{Cache: config.CacheConfig{Addr: "localhost:6379"}})
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = buildValkeyOptions(&config.Config{Cache: config.CacheConfig{Addr: "redis://cache.internal:6380/0"}})
	require.NoError(t, err)
	require.Equal(t, []string{"cache.internal:6380"}, opt.InitAddress)

	_, err = buildValkeyOptions(&config.Config{})
	require.Error(t, err)
}
