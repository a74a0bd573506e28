package services

import "errors"

var (
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminSignup         = errors.New("admin accounts cannot be created through signup")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")
	ErrCarNotFound         = errors.New("car not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrUnauthorizedAction  = errors.New("reservation belongs to another user")
	ErrNotPending          = errors.New("only pending reservations can be updated")
)
