package userrepo

import (
	"context"
	"sync"

	"github.com/yanqian/accounts/internal/domain/account"
)

// MemoryRepository provides an in-memory account directory for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]account.Record
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]account.Record)}
}

// Save stores the record keyed by its exact email.
func (r *MemoryRepository) Save(_ context.Context, record account.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.Email]; exists {
		return account.ErrEmailExists
	}
	r.records[record.Email] = record
	return nil
}

// FindByEmail returns the record stored under email.
func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (account.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[email]
	return record, ok, nil
}

// Len reports how many records are stored.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ account.Directory = (*MemoryRepository)(nil)
