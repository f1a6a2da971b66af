package totp

import (
	"errors"

	"github.com/jhahn/go-twostep/pkg/hotp"
)

// Common errors returned by derivation and verification.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("totp: invalid configuration")
	// ErrThresholdExhausted indicates verification ran out of forward steps
	// without a match. It covers both a wrong code and clock drift beyond the
	// configured window.
	ErrThresholdExhausted = errors.New("totp: verification attempts exhausted")
	// ErrTimeBeforeEpoch indicates the supplied time precedes the start of
	// the drift window, which would underflow the step computation.
	ErrTimeBeforeEpoch = errors.New("totp: time precedes drift window")
	// ErrInvalidDigitCount mirrors hotp.ErrInvalidDigitCount so callers can
	// match it without importing both packages.
	ErrInvalidDigitCount = hotp.ErrInvalidDigitCount
)
