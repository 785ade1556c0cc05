package userrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yanqian/accounts/internal/domain/account"
)

// querier is the subset of *pgxpool.Pool the repository needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository persists account records in Postgres.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository creates a new repository over a pool or connection.
func NewPostgresRepository(db querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts a new account row. A unique violation on email maps to account.ErrEmailExists.
func (r *PostgresRepository) Save(ctx context.Context, record account.Record) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, record.ID, record.Email, record.PasswordHash, record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return account.ErrEmailExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// FindByEmail fetches an account by exact email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (account.Record, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
		LIMIT 1
	`, email)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.Record{}, false, nil
	}
	if err != nil {
		return account.Record{}, false, fmt.Errorf("select account: %w", err)
	}
	return record, true, nil
}

func scanRecord(row pgx.Row) (account.Record, error) {
	var record account.Record
	var created time.Time
	if err := row.Scan(&record.ID, &record.Email, &record.PasswordHash, &created); err != nil {
		return account.Record{}, err
	}
	record.CreatedAt = created.UTC()
	return record, nil
}

var _ account.Directory = (*PostgresRepository)(nil)
