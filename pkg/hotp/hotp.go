package hotp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// Supported digit counts for generated codes.
const (
	MinDigits = 6
	MaxDigits = 8
)

// Code computes the RFC 4226 one-time code for the given secret and counter.
//
// The 20-byte HMAC-SHA1 digest of the counter bytes is reduced by dynamic
// truncation (RFC 4226 section 5.3): the low nibble of the last digest byte
// selects a 4-byte window, the window is read as a big-endian integer with
// the sign bit masked off, and the result is taken modulo 10^digits.
//
// Code is a pure function of its inputs. The returned value may have fewer
// significant digits than requested; use Format for the zero-padded display
// form.
func Code(secret []byte, c Counter, digits int) (int, error) {
	if len(secret) == 0 {
		return 0, ErrEmptySecret
	}
	if digits < MinDigits || digits > MaxDigits {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDigitCount, digits)
	}

	mac := hmac.New(sha1.New, secret)
	mac.Write(c[:])
	hs := mac.Sum(nil)

	offset := hs[len(hs)-1] & 0x0f
	snum := binary.BigEndian.Uint32(hs[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return int(snum % mod), nil
}

// Format renders a code zero-padded to the given digit count for display.
func Format(code, digits int) string {
	return fmt.Sprintf("%0*d", digits, code)
}

// Digits reports the decimal length of a submitted code value when it falls
// in the supported 6 to 8 digit range, and 0 otherwise.
func Digits(submitted int) int {
	switch {
	case submitted < 100000:
		return 0
	case submitted < 1000000:
		return 6
	case submitted < 10000000:
		return 7
	case submitted < 100000000:
		return 8
	default:
		return 0
	}
}
