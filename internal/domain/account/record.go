package account

import (
	"github.com/google/uuid"

	"github.com/yanqian/accounts/pkg/util"
)

// NewRecord returns a record for email with no credential set.
func NewRecord(email string) Record {
	return Record{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: util.NowUTC(),
	}
}

// WithPassword returns a copy of r whose credential is derived from
// plaintext by hasher. r itself is left untouched.
func (r Record) WithPassword(hasher Hasher, plaintext string) (Record, error) {
	hashed, err := hasher.Hash(plaintext)
	if err != nil {
		return Record{}, err
	}
	r.PasswordHash = hashed
	return r, nil
}

// BuildRecord constructs a fully formed record in one step.
func BuildRecord(email, plaintext string, hasher Hasher) (Record, error) {
	return NewRecord(email).WithPassword(hasher, plaintext)
}

// HasCredential reports whether a credential has been derived.
func (r Record) HasCredential() bool {
	return r.PasswordHash != ""
}

// View returns the credential-free projection of r.
func (r Record) View() RecordView {
	return RecordView{
		ID:        r.ID,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}
