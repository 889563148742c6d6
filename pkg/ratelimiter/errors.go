package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates the bucket configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTokenCount indicates the requested token count is invalid.
	ErrInvalidTokenCount = errors.New("invalid token count")
)
