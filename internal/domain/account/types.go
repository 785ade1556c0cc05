package account

import (
	"context"
	"time"
)

// Record is one account held by the directory.
type Record struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordView trims the credential.
type RecordView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Directory is the durable email -> record mapping.
type Directory interface {
	// Save persists a record that already carries its credential.
	Save(ctx context.Context, record Record) error
	// FindByEmail reports found=false, without error, when no record exists.
	FindByEmail(ctx context.Context, email string) (Record, bool, error)
}

// Hasher derives an opaque credential from a plaintext password.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// CredentialVerifier derives and checks password credentials.
type CredentialVerifier interface {
	Hasher
	// Verify reports whether plaintext matches the record's credential.
	// A mismatch is (false, nil); an unreadable credential is an error.
	Verify(record Record, plaintext string) (bool, error)
}
