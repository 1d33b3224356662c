package domain

import "errors"

var (
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoSession           = errors.New("no active session")
	ErrVerificationPending = errors.New("account pending verification")
)
