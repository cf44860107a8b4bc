package models

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidOTP   = errors.New("invalid otp")
	ErrOTPExpired   = errors.New("otp expired")
	ErrRateLimited  = errors.New("too many requests")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)
