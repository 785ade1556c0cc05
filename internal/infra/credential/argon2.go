package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/yanqian/accounts/internal/domain/account"
)

// ErrMalformedHash is returned when a stored credential is not a valid argon2id PHC string.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// maxArgon2Memory caps the m= parameter read back from a stored hash, in KiB.
const maxArgon2Memory = 1 << 20

// Argon2Params tunes argon2id key derivation. Memory is in KiB.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the OWASP-recommended baseline.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p Argon2Params) withDefaults() Argon2Params {
	def := DefaultArgon2Params()
	if p.Memory == 0 {
		p.Memory = def.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = def.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = def.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = def.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = def.KeyLength
	}
	return p
}

// Argon2Verifier stores credentials as $argon2id$v=19$m=..,t=..,p=..$salt$key.
type Argon2Verifier struct {
	params Argon2Params
}

// NewArgon2Verifier fills zero fields of params from DefaultArgon2Params.
func NewArgon2Verifier(params Argon2Params) *Argon2Verifier {
	return &Argon2Verifier{params: params.withDefaults()}
}

// Hash implements account.Hasher.
func (v *Argon2Verifier) Hash(plaintext string) (string, error) {
	salt := make([]byte, v.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, v.params.Iterations, v.params.Memory, v.params.Parallelism, v.params.KeyLength)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		v.params.Memory,
		v.params.Iterations,
		v.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements account.CredentialVerifier. Parameters are read from the
// stored hash, so records survive a change of configured params.
func (v *Argon2Verifier) Verify(record account.Record, plaintext string) (bool, error) {
	if !record.HasCredential() {
		return false, nil
	}
	params, salt, key, err := decodeArgon2(record.PasswordHash)
	if err != nil {
		return false, err
	}
	other := argon2.IDKey([]byte(plaintext), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}
	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	if err := params.validateStored(); err != nil {
		return Argon2Params{}, nil, nil, err
	}
	return params, salt, key, nil
}

func (p Argon2Params) validateStored() error {
	switch {
	case p.Iterations == 0:
		return fmt.Errorf("%w: t must be positive", ErrMalformedHash)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: p must be positive", ErrMalformedHash)
	case p.Memory == 0 || p.Memory > maxArgon2Memory:
		return fmt.Errorf("%w: m=%d out of range", ErrMalformedHash, p.Memory)
	case p.SaltLength == 0:
		return fmt.Errorf("%w: empty salt", ErrMalformedHash)
	case p.KeyLength == 0:
		return fmt.Errorf("%w: empty key", ErrMalformedHash)
	}
	return nil
}

var _ account.CredentialVerifier = (*Argon2Verifier)(nil)
