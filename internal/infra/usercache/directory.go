package usercache

import (
	"context"
	"log/slog"

	"github.com/yanqian/accounts/internal/domain/account"
)

// CachedDirectory is a read-through, write-through cache in front of an
// account.Directory. Cache failures are logged and never fail a call.
// Misses are not cached.
type CachedDirectory struct {
	next   account.Directory
	cache  RecordCache
	logger *slog.Logger
}

// NewCachedDirectory wraps next with cache.
func NewCachedDirectory(next account.Directory, cache RecordCache, logger *slog.Logger) *CachedDirectory {
	return &CachedDirectory{
		next:   next,
		cache:  cache,
		logger: logger.With("component", "account.cache"),
	}
}

// Save stores through to the wrapped directory, then populates the cache.
func (d *CachedDirectory) Save(ctx context.Context, record account.Record) error {
	if err := d.next.Save(ctx, record); err != nil {
		return err
	}
	if err := d.cache.Set(ctx, record); err != nil {
		d.logger.Warn("cache write failed", "email", record.Email, "error", err)
	}
	return nil
}

// FindByEmail serves from cache when possible.
func (d *CachedDirectory) FindByEmail(ctx context.Context, email string) (account.Record, bool, error) {
	record, hit, err := d.cache.Get(ctx, email)
	if err != nil {
		d.logger.Warn("cache read failed", "email", email, "error", err)
	} else if hit {
		return record, true, nil
	}
	record, found, err := d.next.FindByEmail(ctx, email)
	if err != nil || !found {
		return record, found, err
	}
	if err := d.cache.Set(ctx, record); err != nil {
		d.logger.Warn("cache write failed", "email", email, "error", err)
	}
	return record, true, nil
}

var _ account.Directory = (*CachedDirectory)(nil)
