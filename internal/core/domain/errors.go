package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)
