// Package otpauth builds and parses otpauth:// provisioning URIs, the format
// authenticator apps import via QR code.
//
// Only the totp key type with the SHA1 algorithm is representable. The
// reference ecosystem hard-codes SHA1 regardless of what is requested, and
// this package preserves that restriction deliberately rather than inviting
// configurations most client apps mis-handle.
package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhahn/go-twostep/pkg/hotp"
	"github.com/jhahn/go-twostep/pkg/secret"
	"github.com/jhahn/go-twostep/pkg/totp"
)

// Common errors returned by URI construction and parsing.
var (
	// ErrInvalidURI indicates a string that is not a well-formed totp
	// provisioning URI.
	ErrInvalidURI = errors.New("otpauth: invalid provisioning URI")
	// ErrUnsupportedAlgorithm indicates an algorithm parameter other than
	// SHA1. Only SHA1 is supported.
	ErrUnsupportedAlgorithm = errors.New("otpauth: unsupported algorithm")
)

// Key describes one provisioned TOTP credential: the shared secret plus the
// display and derivation parameters an authenticator app needs.
type Key struct {
	// Issuer is the name of the issuing organization.
	Issuer string
	// AccountName identifies the principal, typically an email address.
	AccountName string
	// Secret is the raw shared secret.
	Secret []byte
	// Digits is the code length. Zero means the default of 6.
	Digits int
	// Period is the time step in seconds. Zero means the default of 30.
	Period uint64
}

// URI renders the provisioning URI:
//
//	otpauth://totp/{issuer}:{account}?secret=...&issuer=...&algorithm=SHA1&digits=...&period=...
//
// The algorithm parameter is always SHA1; there is no way to request another.
func (k Key) URI() string {
	digits := k.Digits
	if digits == 0 {
		digits = totp.DefaultDigits
	}
	period := k.Period
	if period == 0 {
		period = totp.DefaultPeriod
	}

	v := url.Values{}
	v.Set("secret", secret.Encode(k.Secret))
	v.Set("issuer", k.Issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", strconv.Itoa(digits))
	v.Set("period", strconv.FormatUint(period, 10))

	label := url.PathEscape(fmt.Sprintf("%s:%s", k.Issuer, k.AccountName))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}

// Parse extracts a Key from a totp provisioning URI. An absent algorithm
// parameter is read as SHA1; anything other than SHA1 is rejected rather
// than silently mis-verified.
func Parse(raw string) (Key, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != "otpauth" {
		return Key{}, fmt.Errorf("%w: scheme %q", ErrInvalidURI, u.Scheme)
	}
	if u.Host != "totp" {
		return Key{}, fmt.Errorf("%w: key type %q", ErrInvalidURI, u.Host)
	}

	q := u.Query()

	if algo := q.Get("algorithm"); algo != "" && !strings.EqualFold(algo, "SHA1") {
		return Key{}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algo)
	}

	rawSecret := q.Get("secret")
	if rawSecret == "" {
		return Key{}, fmt.Errorf("%w: missing secret", ErrInvalidURI)
	}
	sec, err := secret.Decode(rawSecret)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	key := Key{
		Secret: sec,
		Issuer: q.Get("issuer"),
		Digits: totp.DefaultDigits,
		Period: totp.DefaultPeriod,
	}

	// Label is "issuer:account" or just "account".
	label := strings.TrimPrefix(u.Path, "/")
	if issuer, account, ok := strings.Cut(label, ":"); ok {
		key.AccountName = account
		if key.Issuer == "" {
			key.Issuer = issuer
		}
	} else {
		key.AccountName = label
	}

	if d := q.Get("digits"); d != "" {
		digits, err := strconv.Atoi(d)
		if err != nil || digits < hotp.MinDigits || digits > hotp.MaxDigits {
			return Key{}, fmt.Errorf("%w: digits %q", ErrInvalidURI, d)
		}
		key.Digits = digits
	}
	if p := q.Get("period"); p != "" {
		period, err := strconv.ParseUint(p, 10, 64)
		if err != nil || period == 0 {
			return Key{}, fmt.Errorf("%w: period %q", ErrInvalidURI, p)
		}
		key.Period = period
	}

	return key, nil
}
