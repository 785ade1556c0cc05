package usercache

import (
	"context"

	"github.com/yanqian/accounts/internal/domain/account"
)

// RecordCache stores account records keyed by email.
type RecordCache interface {
	Get(ctx context.Context, email string) (account.Record, bool, error)
	Set(ctx context.Context, record account.Record) error
}
