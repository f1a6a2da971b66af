package totp

import (
	"fmt"

	"github.com/jhahn/go-twostep/pkg/hotp"
)

// Default system parameters.
const (
	// DefaultPeriod is the time step size in seconds.
	DefaultPeriod uint64 = 30
	// DefaultDrift is the number of steps of clock disagreement tolerated in
	// either direction.
	DefaultDrift uint64 = 2
	// DefaultDigits is the code length used for generation.
	DefaultDigits = 6
	// DefaultThreshold bounds the forward search during counter-based
	// verification.
	DefaultThreshold = 15
)

// Config holds the system parameters for time-based derivation and
// verification. There are no package-level knobs: every call takes its
// parameters explicitly through a Config.
type Config struct {
	// Period is the time step size in seconds. Must be positive.
	Period uint64
	// T0 is the Unix time the step counter starts from.
	T0 uint64
	// Drift is the number of time steps the derived counter is biased
	// backward, so the forward-only verification loop covers the symmetric
	// window [-Drift, +Drift] around the client's true step.
	Drift uint64
	// Digits is the code length produced by CodeAt. Must be 6, 7, or 8.
	Digits int
	// Threshold caps the number of forward steps a verification will
	// attempt. Zero means no cap beyond the drift window itself.
	Threshold int
}

// DefaultConfig returns the reference configuration: 30 second steps, epoch
// t0=0, drift of 2 steps, 6 digit codes, and a search threshold of 15.
func DefaultConfig() Config {
	return Config{
		Period:    DefaultPeriod,
		Drift:     DefaultDrift,
		Digits:    DefaultDigits,
		Threshold: DefaultThreshold,
	}
}

// validate checks that the configuration is usable.
func (c Config) validate() error {
	if c.Period == 0 {
		return fmt.Errorf("%w: period must be positive", ErrInvalidConfig)
	}
	if c.Digits < hotp.MinDigits || c.Digits > hotp.MaxDigits {
		return fmt.Errorf("%w: digits must be 6, 7, or 8", ErrInvalidConfig)
	}
	return nil
}

// window is the number of counters VerifyAt inspects: one step per side of
// the drift allowance plus the client's own step, never more than Threshold
// when a cap is set.
func (c Config) window() int {
	w := int(2*c.Drift) + 1
	if c.Threshold > 0 && w > c.Threshold {
		return c.Threshold
	}
	return w
}
