package totp

import (
	"fmt"

	"github.com/jhahn/go-twostep/pkg/hotp"
)

// CounterAt maps a Unix timestamp to the counter a verification starts from.
//
// The step index is floor((now - T0) / Period) minus Drift: the result is
// deliberately biased backward so that the forward-only verification loop
// covers clients whose clocks run ahead of the server as well as behind.
//
// A timestamp earlier than T0 + Drift*Period would underflow the unsigned
// step arithmetic and is rejected with ErrTimeBeforeEpoch rather than
// silently wrapped.
func CounterAt(cfg Config, now uint64) (hotp.Counter, error) {
	if err := cfg.validate(); err != nil {
		return hotp.Counter{}, err
	}
	floor := cfg.T0 + cfg.Drift*cfg.Period
	if now < floor {
		return hotp.Counter{}, fmt.Errorf("%w: time %d is before %d", ErrTimeBeforeEpoch, now, floor)
	}
	return hotp.NewCounter((now-cfg.T0)/cfg.Period - cfg.Drift), nil
}

// CodeAt computes the code a client would display at the given Unix time.
// No drift bias applies here: generation uses the true time step.
func CodeAt(cfg Config, secret []byte, now uint64) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if now < cfg.T0 {
		return 0, fmt.Errorf("%w: time %d is before t0 %d", ErrTimeBeforeEpoch, now, cfg.T0)
	}
	return hotp.Code(secret, hotp.NewCounter((now-cfg.T0)/cfg.Period), cfg.Digits)
}

// Remaining reports the seconds left at the given Unix time before the
// current code rolls over to the next step.
func Remaining(cfg Config, now uint64) uint64 {
	period := cfg.Period
	if period == 0 {
		period = DefaultPeriod
	}
	if now < cfg.T0 {
		return 0
	}
	return period - (now-cfg.T0)%period
}
