package hotp

import (
	"bytes"
	"encoding/binary"
	"strconv"
)

// Counter is a discrete moving factor encoded as the 8-byte big-endian
// representation of an unsigned 64-bit integer, exactly as it is fed to the
// HMAC (RFC 4226 section 5.1). It is an immutable value type: Next returns a
// new Counter and no other mutation path exists.
type Counter [8]byte

// NewCounter returns the counter for the given integer value.
func NewCounter(v uint64) Counter {
	var c Counter
	binary.BigEndian.PutUint64(c[:], v)
	return c
}

// Uint64 returns the integer value of the counter.
func (c Counter) Uint64() uint64 {
	return binary.BigEndian.Uint64(c[:])
}

// Next returns the successor counter, wrapping modulo 2^64.
func (c Counter) Next() Counter {
	return NewCounter(c.Uint64() + 1)
}

// Compare orders counters by their integer value. Big-endian encoding makes
// byte order and numeric order coincide.
func (c Counter) Compare(other Counter) int {
	return bytes.Compare(c[:], other[:])
}

// String returns the decimal form of the counter value.
func (c Counter) String() string {
	return strconv.FormatUint(c.Uint64(), 10)
}
