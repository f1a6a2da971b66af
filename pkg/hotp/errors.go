package hotp

import "errors"

// Common errors returned by the HOTP engine.
var (
	// ErrInvalidDigitCount indicates a digit count outside the supported
	// 6 to 8 range, or a submitted code whose decimal length falls outside it.
	ErrInvalidDigitCount = errors.New("hotp: invalid digit count")
	// ErrEmptySecret indicates an empty shared secret.
	ErrEmptySecret = errors.New("hotp: secret must not be empty")
)
