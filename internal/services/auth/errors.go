package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("user with that email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
