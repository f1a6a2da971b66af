// Package totp implements Time-based One-Time Passwords (RFC 6238) with a
// resynchronizing verification loop.
//
// Wall-clock time maps to an hotp.Counter through an explicit Config (step
// period, epoch offset, drift allowance). The derived counter is biased
// backward by the drift so the forward-only verifier covers a symmetric
// window around the client's true time step.
//
//	cfg := totp.DefaultConfig()
//	now := uint64(time.Now().Unix())
//
//	// Client side: current code.
//	code, err := totp.CodeAt(cfg, secret, now)
//
//	// Server side: drift-tolerant verification.
//	steps, err := totp.VerifyAt(cfg, secret, submitted, now)
//
// Every operation is a short bounded computation: at most Threshold HMAC
// evaluations, no I/O, no retained state. Calls for different secrets are
// independent and safe to run concurrently. If a caller persists a counter
// per principal (HOTP-style use via Verify), serializing updates to that
// counter is the caller's responsibility.
package totp
