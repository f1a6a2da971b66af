// Package secret generates and encodes shared OTP secrets.
//
// Generation consumes an injected entropy source; the package never retries
// or falls back when the source fails. Encoding is unpadded RFC 4648 base32,
// the form authenticator apps accept in provisioning URIs.
package secret

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultBits is the recommended secret size (RFC 4226 section 4 requires at
// least 128 bits and recommends 160).
const DefaultBits = 160

// Common errors returned during secret generation and decoding.
var (
	// ErrInvalidBitCount indicates a requested size that is not a positive
	// multiple of 8.
	ErrInvalidBitCount = errors.New("secret: bit count must be a positive multiple of 8")
	// ErrEntropySource indicates the underlying random source failed. The
	// failure is propagated, never retried.
	ErrEntropySource = errors.New("secret: entropy source failed")
	// ErrInvalidEncoding indicates a base32 string that does not decode.
	ErrInvalidEncoding = errors.New("secret: invalid base32 encoding")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generate returns a bits/8 byte secret from the operating system entropy
// source.
func Generate(bits int) ([]byte, error) {
	return GenerateFrom(rand.Reader, bits)
}

// GenerateFrom reads a bits/8 byte secret from r.
func GenerateFrom(r io.Reader, bits int) ([]byte, error) {
	if bits <= 0 || bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBitCount, bits)
	}
	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return buf, nil
}

// Encode returns the unpadded base32 form of a secret.
func Encode(secret []byte) string {
	return encoding.EncodeToString(secret)
}

// Decode parses a base32 secret, tolerating lower case and trailing padding.
func Decode(s string) ([]byte, error) {
	s = strings.TrimRight(strings.ToUpper(strings.TrimSpace(s)), "=")
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return raw, nil
}
