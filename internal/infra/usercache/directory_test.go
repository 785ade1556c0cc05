package usercache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/accounts/internal/domain/account"
	"github.com/yanqian/accounts/internal/infra/userrepo"
	"github.com/yanqian/accounts/pkg/util"
)

type countingDirectory struct {
	account.Directory
	finds int
}

func (d *countingDirectory) FindByEmail(ctx context.Context, email string) (account.Record, bool, error) {
	d.finds++
	return d.Directory.FindByEmail(ctx, email)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (account.Record, bool, error) {
	return account.Record{}, false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, account.Record) error {
	return errors.New("cache down")
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRecord() account.Record {
	return account.Record{ID: "id-1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestCachedDirectory_WriteThrough(t *testing.T) {
	inner := &countingDirectory{Directory: userrepo.NewMemoryRepository()}
	dir := NewCachedDirectory(inner, NewMemoryCache(time.Minute), newTestLogger())
	ctx := context.Background()

	require.NoError(t, dir.Save(ctx, sampleRecord()))

	got, found, err := dir.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, sampleRecord(), got)
	require.Zero(t, inner.finds)
}

func TestCachedDirectory_ReadThrough(t *testing.T) {
	repo := userrepo.NewMemoryRepository()
	require.NoError(t, repo.Save(context.Background(), sampleRecord()))
	inner := &countingDirectory{Directory: repo}
	dir := NewCachedDirectory(inner, NewMemoryCache(0), newTestLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, found, err := dir.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, sampleRecord(), got)
	}
	require.Equal(t, 1, inner.finds)
}

func TestCachedDirectory_MissesAreNotCached(t *testing.T) {
	repo := userrepo.NewMemoryRepository()
	inner := &countingDirectory{Directory: repo}
	dir := NewCachedDirectory(inner, NewMemoryCache(time.Minute), newTestLogger())
	ctx := context.Background()

	_, found, err := dir.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, repo.Save(ctx, sampleRecord()))
	_, found, err = dir.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, inner.finds)
}

func TestCachedDirectory_DuplicateSaveKeepsCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	dir := NewCachedDirectory(userrepo.NewMemoryRepository(), cache, newTestLogger())
	ctx := context.Background()

	require.NoError(t, dir.Save(ctx, sampleRecord()))
	dup := sampleRecord()
	dup.ID = "id-2"
	dup.PasswordHash = "other"
	require.ErrorIs(t, dir.Save(ctx, dup), account.ErrEmailExists)

	cached, hit, err := cache.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "id-1", cached.ID)
}

func TestCachedDirectory_BrokenCacheFallsBack(t *testing.T) {
	inner := &countingDirectory{Directory: userrepo.NewMemoryRepository()}
	dir := NewCachedDirectory(inner, brokenCache{}, newTestLogger())
	ctx := context.Background()

	require.NoError(t, dir.Save(ctx, sampleRecord()))
	got, found, err := dir.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, sampleRecord(), got)
	require.Equal(t, 1, inner.finds)
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := util.Clock
	util.Clock = func() time.Time { return now }
	t.Cleanup(func() { util.Clock = orig })

	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, sampleRecord()))

	_, hit, _ := cache.Get(ctx, "a@x.com")
	require.True(t, hit)

	now = now.Add(2 * time.Minute)
	_, hit, _ = cache.Get(ctx, "a@x.com")
	require.False(t, hit)
}

func TestMemoryCache_EvictionKeepsFreshEntry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := util.Clock
	util.Clock = func() time.Time { return now }
	t.Cleanup(func() { util.Clock = orig })

	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, sampleRecord()))

	stale := now.Add(2 * time.Minute)
	now = stale
	refreshed := sampleRecord()
	refreshed.ID = "id-2"
	require.NoError(t, cache.Set(ctx, refreshed))

	// Get observed the old entry as expired at `stale`; the refreshed one must stay.
	cache.evictExpired("a@x.com", stale)

	got, hit, err := cache.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "id-2", got.ID)

	cache.evictExpired("a@x.com", stale.Add(time.Hour))
	_, hit, _ = cache.Get(ctx, "a@x.com")
	require.False(t, hit)
}

func TestValkeyCache_Key(t *testing.T) {
	require.Equal(t, "accounts:email:a@x.com", NewValkeyCache(nil, "", 0).key("a@x.com"))
	require.Equal(t, "svc:email:a@x.com", NewValkeyCache(nil, "svc", 0).key("a@x.com"))
}
