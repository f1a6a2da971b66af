package totp

import (
	"fmt"

	"github.com/jhahn/go-twostep/pkg/hotp"
)

// Verify checks a submitted code against the codes of up to threshold
// consecutive counters starting at c. On a match it returns the number of
// forward increments consumed, in [0, threshold); the caller uses that count
// to resynchronize a persisted counter. Exhausting the threshold without a
// match returns ErrThresholdExhausted.
//
// The digit count used for truncation is inferred from the decimal length of
// the submitted value, mirroring clients that zero-pad only for display. The
// accepted range is the union of the 6, 7, and 8 digit ranges; values outside
// it are rejected with ErrInvalidDigitCount before any HMAC is computed.
// Note the consequence: the same secret and counter truncate differently for
// a 6-digit and an 8-digit submission. Callers that know the expected code
// length should enforce it before calling Verify (the otp package does).
//
// The search is forward-only and strictly increasing; first match wins.
// Backward coverage is achieved entirely by the bias CounterAt applies.
func Verify(secret []byte, c hotp.Counter, submitted, threshold int) (int, error) {
	digits := hotp.Digits(submitted)
	if digits == 0 {
		return 0, fmt.Errorf("%w: submitted code %d", ErrInvalidDigitCount, submitted)
	}
	return VerifyDigits(secret, c, submitted, digits, threshold)
}

// VerifyDigits is Verify with the digit count stated explicitly by the
// caller instead of inferred from the submission. This closes the inference
// ambiguity: codes whose value has leading zeros still verify, and a
// credential provisioned for 6 digits never matches an 8 digit submission.
func VerifyDigits(secret []byte, c hotp.Counter, submitted, digits, threshold int) (int, error) {
	if digits < hotp.MinDigits || digits > hotp.MaxDigits {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDigitCount, digits)
	}
	max := 1
	for i := 0; i < digits; i++ {
		max *= 10
	}
	if submitted < 0 || submitted >= max {
		return 0, fmt.Errorf("%w: code %d does not fit %d digits", ErrInvalidDigitCount, submitted, digits)
	}
	if threshold <= 0 {
		return 0, fmt.Errorf("%w: threshold must be positive", ErrInvalidConfig)
	}

	for step := 0; step < threshold; step++ {
		candidate, err := hotp.Code(secret, c, digits)
		if err != nil {
			return 0, err
		}
		if candidate == submitted {
			return step, nil
		}
		c = c.Next()
	}
	return 0, fmt.Errorf("%w: no match within %d steps", ErrThresholdExhausted, threshold)
}

// VerifyAt verifies a submitted code against the current wall-clock step.
//
// The starting counter comes from CounterAt, biased cfg.Drift steps backward,
// and the search spans 2*Drift+1 counters (capped at cfg.Threshold) so the
// accepted window is symmetric around the client's true step. With the
// default period of 30 seconds and drift of 2 steps, a client clock may lead
// or lag the server by up to 89 seconds.
//
// On success the returned count is the number of increments consumed from the
// biased counter, in [0, 2*Drift]; a count of Drift means the clocks agree on
// the current step.
func VerifyAt(cfg Config, secret []byte, submitted int, now uint64) (int, error) {
	start, err := CounterAt(cfg, now)
	if err != nil {
		return 0, err
	}
	return Verify(secret, start, submitted, cfg.window())
}

// VerifyAtDigits is VerifyAt using cfg.Digits for truncation instead of the
// submission's decimal length.
func VerifyAtDigits(cfg Config, secret []byte, submitted int, now uint64) (int, error) {
	start, err := CounterAt(cfg, now)
	if err != nil {
		return 0, err
	}
	return VerifyDigits(secret, start, submitted, cfg.Digits, cfg.window())
}
