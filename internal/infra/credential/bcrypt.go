package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yanqian/accounts/internal/domain/account"
)

// MaxBcryptPasswordBytes is the longest password bcrypt accepts.
const MaxBcryptPasswordBytes = 72

// BcryptVerifier derives and checks bcrypt credentials.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier clamps cost into bcrypt's accepted range; zero means bcrypt.DefaultCost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptVerifier{cost: cost}
}

// Cost reports the work factor in use.
func (v *BcryptVerifier) Cost() int {
	return v.cost
}

// Hash implements account.Hasher.
func (v *BcryptVerifier) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: bcrypt accepts at most %d bytes", account.ErrPasswordTooLong, MaxBcryptPasswordBytes)
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements account.CredentialVerifier. A password longer than
// bcrypt accepts cannot match any stored credential.
func (v *BcryptVerifier) Verify(record account.Record, plaintext string) (bool, error) {
	if !record.HasCredential() || len(plaintext) > MaxBcryptPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ account.CredentialVerifier = (*BcryptVerifier)(nil)
