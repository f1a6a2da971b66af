package otp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhahn/go-twostep/pkg/hotp"
	"github.com/jhahn/go-twostep/pkg/otpauth"
	"github.com/jhahn/go-twostep/pkg/qr"
	"github.com/jhahn/go-twostep/pkg/secret"
	"github.com/jhahn/go-twostep/pkg/totp"
)

// Common errors returned by the authenticator.
var (
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// Config holds authenticator configuration.
type Config struct {
	// Secret is the base32-encoded shared secret key (required).
	Secret string
	// Issuer is the name of the issuing organization (e.g., "MyApp").
	Issuer string
	// AccountName is the account identifier (e.g., "user@example.com").
	AccountName string
	// Digits specifies the number of digits in the OTP code (6, 7, or 8).
	// Default: 6
	Digits int
	// Period specifies the time step in seconds.
	// Default: 30
	Period uint64
	// Drift specifies the number of time steps of clock disagreement
	// tolerated in either direction.
	// Default: 2
	Drift uint64
	// Threshold bounds the forward search during counter-based verification
	// with VerifyCounter.
	// Default: 15
	Threshold int
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}
	if _, err := secret.Decode(c.Secret); err != nil {
		return fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}
	if c.Digits != 0 && (c.Digits < hotp.MinDigits || c.Digits > hotp.MaxDigits) {
		return fmt.Errorf("%w: digits must be 6, 7, or 8", ErrInvalidConfig)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Authenticator generates and validates TOTP codes for a single credential.
// It is safe for concurrent use.
type Authenticator struct {
	cfg Config
	key []byte
	// now supplies wall-clock time; fixed in tests.
	now func() uint64
}

// NewAuthenticator creates a new authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = totp.DefaultDigits
	}
	if cfg.Period == 0 {
		cfg.Period = totp.DefaultPeriod
	}
	if cfg.Drift == 0 {
		cfg.Drift = totp.DefaultDrift
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = totp.DefaultThreshold
	}

	key, err := secret.Decode(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Authenticator{
		cfg: cfg,
		key: key,
		now: func() uint64 { return uint64(time.Now().Unix()) },
	}, nil
}

// totpConfig returns the derivation parameters for this credential.
func (a *Authenticator) totpConfig() totp.Config {
	return totp.Config{
		Period:    a.cfg.Period,
		Drift:     a.cfg.Drift,
		Digits:    a.cfg.Digits,
		Threshold: a.cfg.Threshold,
	}
}

// Authenticate validates a code against the current time.
//
// The code must have exactly the configured number of digits; unlike the
// low-level totp.Verify, the expected length is stated by configuration
// rather than inferred from the submission, so a 6 digit credential never
// accepts an 8 digit submission. Verification tolerates the configured
// drift in either direction and resynchronizes internally.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	_, err := a.authenticate(ctx, code)
	return err
}

// AuthenticateSteps is Authenticate plus the number of forward steps the
// verifier consumed from the drift-biased counter, in [0, 2*Drift]. A value
// of Drift means the client clock agrees with the server on the current step.
func (a *Authenticator) AuthenticateSteps(ctx context.Context, code string) (int, error) {
	return a.authenticate(ctx, code)
}

func (a *Authenticator) authenticate(ctx context.Context, code string) (int, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if len(code) != a.cfg.Digits {
		return 0, fmt.Errorf("%w: expected %d digits, got %d", ErrInvalidCode, a.cfg.Digits, len(code))
	}
	submitted, err := strconv.Atoi(code)
	if err != nil || submitted < 0 {
		return 0, fmt.Errorf("%w: code must be decimal digits", ErrInvalidCode)
	}

	steps, err := totp.VerifyAtDigits(a.totpConfig(), a.key, submitted, a.now())
	if err != nil {
		switch {
		case errors.Is(err, totp.ErrThresholdExhausted), errors.Is(err, totp.ErrInvalidDigitCount):
			return 0, fmt.Errorf("%w: %v", ErrInvalidCode, err)
		default:
			return 0, err
		}
	}
	return steps, nil
}

// VerifyCounter validates a code against a caller-persisted counter
// (HOTP-style, non-time-based use) and returns the counter to persist for
// the next validation: one past the matched step.
//
// The caller owns the counter and must serialize concurrent validations for
// the same principal; otherwise a code could be replayed through a race.
func (a *Authenticator) VerifyCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	code = strings.TrimSpace(code)
	if len(code) != a.cfg.Digits {
		return 0, fmt.Errorf("%w: expected %d digits, got %d", ErrInvalidCode, a.cfg.Digits, len(code))
	}
	submitted, err := strconv.Atoi(code)
	if err != nil || submitted < 0 {
		return 0, fmt.Errorf("%w: code must be decimal digits", ErrInvalidCode)
	}

	steps, err := totp.VerifyDigits(a.key, hotp.NewCounter(counter), submitted, a.cfg.Digits, a.cfg.Threshold)
	if err != nil {
		switch {
		case errors.Is(err, totp.ErrThresholdExhausted), errors.Is(err, totp.ErrInvalidDigitCount):
			return 0, fmt.Errorf("%w: %v", ErrInvalidCode, err)
		default:
			return 0, err
		}
	}
	return counter + uint64(steps) + 1, nil
}

// GenerateCode returns the current code, zero-padded for display.
func (a *Authenticator) GenerateCode() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	code, err := totp.CodeAt(a.totpConfig(), a.key, a.now())
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate code: %w", err)
	}
	return hotp.Format(code, a.cfg.Digits), nil
}

// Remaining reports the seconds left before the current code rolls over.
func (a *Authenticator) Remaining() uint64 {
	if a == nil {
		return 0
	}
	return totp.Remaining(a.totpConfig(), a.now())
}

// Key returns the provisioning parameters for this credential.
func (a *Authenticator) Key() otpauth.Key {
	if a == nil {
		return otpauth.Key{}
	}
	return otpauth.Key{
		Issuer:      a.cfg.Issuer,
		AccountName: a.cfg.AccountName,
		Secret:      a.key,
		Digits:      a.cfg.Digits,
		Period:      a.cfg.Period,
	}
}

// ProvisioningURI returns the otpauth:// URI for QR code generation.
// This URI can be encoded as a QR code and scanned by authenticator apps.
func (a *Authenticator) ProvisioningURI() string {
	if a == nil {
		return ""
	}
	return a.Key().URI()
}

// QRCodeSVG renders the provisioning URI as an SVG QR code.
func (a *Authenticator) QRCodeSVG() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return qr.SVG(a.ProvisioningURI())
}

// QRCodePNG renders the provisioning URI as a size x size pixel PNG QR code.
func (a *Authenticator) QRCodePNG(size int) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAuthenticator
	}
	return qr.PNG(a.ProvisioningURI(), size)
}

// GenerateSecret generates a cryptographically random 160-bit secret key.
// The secret is returned as a base32-encoded string suitable for use in the
// Config.Secret field.
func GenerateSecret() (string, error) {
	raw, err := secret.Generate(secret.DefaultBits)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate random secret: %w", err)
	}
	return secret.Encode(raw), nil
}
