package domain

import "errors"

var (
	ErrDuplicateIdentity = errors.New("identity already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrUnauthorized      = errors.New("access forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
)
