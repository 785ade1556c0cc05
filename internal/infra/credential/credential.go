package credential

import (
	"fmt"
	"strings"

	"github.com/yanqian/accounts/internal/domain/account"
)

// Supported algorithm names.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2ID = "argon2id"
)

// Config selects and tunes the credential verifier.
type Config struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2Params
}

// New builds the verifier named by cfg.Algorithm. An empty name selects bcrypt.
func New(cfg Config) (account.CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case "", AlgorithmBcrypt:
		return NewBcryptVerifier(cfg.BcryptCost), nil
	case AlgorithmArgon2ID, "argon2":
		return NewArgon2Verifier(cfg.Argon2), nil
	default:
		return nil, fmt.Errorf("unsupported credential algorithm %q", cfg.Algorithm)
	}
}
