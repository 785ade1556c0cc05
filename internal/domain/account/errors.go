package account

import "errors"

var (
	// ErrEmailExists indicates a duplicate email address.
	ErrEmailExists = errors.New("email already exists")
	// ErrUserNotFound indicates the directory has no record for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong indicates the hashing scheme cannot accept the password.
	ErrPasswordTooLong = errors.New("password too long")
)

// Error codes carried by apperrors.AppError.
const (
	CodeInvalidInput       = "invalid_input"
	CodeEmailExists        = "email_exists"
	CodeUserNotFound       = "user_not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeCredentialError    = "credential_error"
	CodePersistenceError   = "persistence_error"
)
