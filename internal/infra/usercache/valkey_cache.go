package usercache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/accounts/internal/domain/account"
)

// cachedRecord is the wire form; account.Record hides its hash from JSON.
type cachedRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValkeyCache keeps account records in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string, ttl time.Duration) *ValkeyCache {
	if prefix == "" {
		prefix = "accounts"
	}
	return &ValkeyCache{client: client, prefix: prefix, ttl: ttl}
}

// Get implements RecordCache.
func (c *ValkeyCache) Get(ctx context.Context, email string) (account.Record, bool, error) {
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(email)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return account.Record{}, false, nil
		}
		return account.Record{}, false, err
	}
	var cached cachedRecord
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return account.Record{}, false, err
	}
	return account.Record{
		ID:           cached.ID,
		Email:        cached.Email,
		PasswordHash: cached.PasswordHash,
		CreatedAt:    cached.CreatedAt,
	}, true, nil
}

// Set implements RecordCache.
func (c *ValkeyCache) Set(ctx context.Context, record account.Record) error {
	payload, err := json.Marshal(cachedRecord{
		ID:           record.ID,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	})
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.key(record.Email)).Value(string(payload))
	var cmd valkey.Completed
	if c.ttl > 0 {
		ttl := c.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) key(email string) string {
	return c.prefix + ":email:" + email
}

var _ RecordCache = (*ValkeyCache)(nil)
