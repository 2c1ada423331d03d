package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("refresh token required")
	ErrTokenExpired       = errors.New("refresh token expired")
	ErrTokenInvalid       = errors.New("invalid refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("record not found")
	ErrNoPushToken        = errors.New("no push token registered")
)
