package account

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/yanqian/accounts/pkg/errors"
)

// Service exposes the account workflows.
type Service interface {
	CreateUser(ctx context.Context, email, password string) (Record, error)
	Authenticate(ctx context.Context, email, password string) (Record, error)
}

type service struct {
	directory Directory
	verifier  CredentialVerifier
	logger    *slog.Logger
}

// NewService constructs a Service over the given collaborators.
func NewService(directory Directory, verifier CredentialVerifier, logger *slog.Logger) Service {
	return &service{
		directory: directory,
		verifier:  verifier,
		logger:    logger.With("component", "account.service"),
	}
}

// CreateUser derives the credential, stores the record and returns it.
// Uniqueness is left to the directory.
func (s *service) CreateUser(ctx context.Context, email, password string) (Record, error) {
	if err := requireInput(email, password); err != nil {
		return Record{}, err
	}
	record, err := BuildRecord(email, password, s.verifier)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return Record{}, apperrors.Wrap(CodeInvalidInput, "password is too long", err)
		}
		return Record{}, apperrors.Wrap(CodeCredentialError, "failed to derive credential", err)
	}
	if err := s.directory.Save(ctx, record); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return Record{}, apperrors.Wrap(CodeEmailExists, "email already registered", err)
		}
		return Record{}, apperrors.Wrap(CodePersistenceError, "failed to save account", err)
	}
	s.logger.Info("account created", "id", record.ID, "email", record.Email)
	return record, nil
}

// Authenticate returns the stored record when password matches it.
func (s *service) Authenticate(ctx context.Context, email, password string) (Record, error) {
	if err := requireInput(email, password); err != nil {
		return Record{}, err
	}
	record, found, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return Record{}, apperrors.Wrap(CodePersistenceError, "failed to fetch account", err)
	}
	if !found {
		s.logger.Warn("authentication failed", "email", email, "reason", CodeUserNotFound)
		return Record{}, apperrors.Wrap(CodeUserNotFound, "no account for email", ErrUserNotFound)
	}
	ok, err := s.verifier.Verify(record, password)
	if err != nil {
		return Record{}, apperrors.Wrap(CodeCredentialError, "failed to verify credential", err)
	}
	if !ok {
		s.logger.Warn("authentication failed", "email", email, "reason", CodeInvalidCredentials)
		return Record{}, apperrors.Wrap(CodeInvalidCredentials, "invalid email or password", ErrInvalidCredentials)
	}
	return record, nil
}

// requireInput rejects empty strings only; the email is kept exactly as given.
func requireInput(email, password string) error {
	if email == "" {
		return apperrors.Wrap(CodeInvalidInput, "email cannot be empty", nil)
	}
	if password == "" {
		return apperrors.Wrap(CodeInvalidInput, "password cannot be empty", nil)
	}
	return nil
}
