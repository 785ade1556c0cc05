package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/accounts/internal/domain/account"
	"github.com/yanqian/accounts/internal/infra/config"
	"github.com/yanqian/accounts/internal/infra/credential"
	"github.com/yanqian/accounts/internal/infra/database"
	"github.com/yanqian/accounts/internal/infra/usercache"
	"github.com/yanqian/accounts/internal/infra/userrepo"
	"github.com/yanqian/accounts/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level)
}

func provideCredentialConfig(cfg *config.Config) credential.Config {
	return credential.Config{
		Algorithm:  cfg.Credential.Algorithm,
		BcryptCost: cfg.Credential.BcryptCost,
		Argon2: credential.Argon2Params{
			Memory:      cfg.Credential.Argon2.Memory,
			Iterations:  cfg.Credential.Argon2.Iterations,
			Parallelism: cfg.Credential.Argon2.Parallelism,
			SaltLength:  cfg.Credential.Argon2.SaltLength,
			KeyLength:   cfg.Credential.Argon2.KeyLength,
		},
	}
}

func provideCredentialVerifier(cfg credential.Config) (account.CredentialVerifier, error) {
	return credential.New(cfg)
}

// provideDirectory picks Postgres when a DSN is configured and memory
// otherwise, then layers the Valkey cache on top when enabled.
func provideDirectory(cfg *config.Config, logger *slog.Logger) (account.Directory, func(), error) {
	var (
		directory account.Directory
		closers   []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if strings.TrimSpace(cfg.Directory.Postgres.DSN) == "" {
		logger.Info("directory postgres dsn not set, using memory repository")
		directory = userrepo.NewMemoryRepository()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool, err := database.OpenPool(ctx, database.PoolConfig{
			DSN:      cfg.Directory.Postgres.DSN,
			MaxConns: cfg.Directory.Postgres.MaxConns,
			MinConns: cfg.Directory.Postgres.MinConns,
		})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		if cfg.Directory.Migrate {
			if err := database.MigratePool(ctx, pool); err != nil {
				cleanup()
				return nil, nil, err
			}
			logger.Info("directory migrations applied")
		}
		logger.Info("directory postgres repository enabled")
		directory = userrepo.NewPostgresRepository(pool)
	}

	if cfg.Cache.Enabled {
		if client, ok := openValkey(cfg, logger); ok {
			closers = append(closers, client.Close)
			directory = usercache.NewCachedDirectory(directory, usercache.NewValkeyCache(client, cfg.Cache.Prefix, cfg.Cache.TTL), logger)
			logger.Info("directory valkey cache enabled", "addr", cfg.Cache.Addr)
		}
	}

	return directory, cleanup, nil
}

// openValkey reports ok=false, after logging, when the cache is unusable.
func openValkey(cfg *config.Config, logger *slog.Logger) (valkey.Client, bool) {
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, continuing without cache", "error", err)
		return nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, continuing without cache", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, continuing without cache", "error", err)
		client.Close()
		return nil, false
	}
	return client, true
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	addr := strings.TrimSpace(cfg.Cache.Addr)
	if addr == "" {
		return valkey.ClientOption{}, fmt.Errorf("cache.addr is empty")
	}
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
