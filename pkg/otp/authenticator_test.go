package otp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// testSecret is the base32 form of "12345678901234567890", the RFC test
// vector secret, so expected codes are fixed.
const testSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// testNow is a fixed timestamp; the 6 digit code at its time step is 050471.
const testNow = uint64(1111111111)

// newTestAuthenticator pins the clock so expectations are deterministic.
func newTestAuthenticator(t *testing.T, cfg Config) *Authenticator {
	t.Helper()
	auth, err := NewAuthenticator(cfg)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}
	auth.now = func() uint64 { return testNow }
	return auth
}

// TestNewAuthenticator tests authenticator construction.
func TestNewAuthenticator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config",
			cfg: Config{
				Secret:      testSecret,
				Issuer:      "TestApp",
				AccountName: "user@example.com",
				Digits:      6,
				Period:      30,
				Drift:       2,
			},
			wantErr: nil,
		},
		{
			name:    "minimal config",
			cfg:     Config{Secret: testSecret},
			wantErr: nil,
		},
		{
			name:    "7 digits",
			cfg:     Config{Secret: testSecret, Digits: 7},
			wantErr: nil,
		},
		{
			name:    "8 digits",
			cfg:     Config{Secret: testSecret, Digits: 8},
			wantErr: nil,
		},
		{
			name:    "missing secret",
			cfg:     Config{Issuer: "TestApp"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "invalid base32 secret",
			cfg:     Config{Secret: "invalid@secret!"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "invalid digits",
			cfg:     Config{Secret: testSecret, Digits: 5},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative threshold",
			cfg:     Config{Secret: testSecret, Threshold: -1},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := NewAuthenticator(tt.cfg)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if auth == nil {
				t.Fatal("expected authenticator, got nil")
			}
		})
	}
}

// TestAuthenticate tests code validation at a fixed time.
func TestAuthenticate(t *testing.T) {
	auth := newTestAuthenticator(t, Config{
		Secret:      testSecret,
		Issuer:      "TestApp",
		AccountName: "user@example.com",
	})

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		// The current code has a leading zero; explicit digit handling
		// accepts it where length inference would not.
		{name: "current code", code: "050471", wantErr: nil},
		{name: "previous step", code: "081804", wantErr: nil},
		{name: "wrong code", code: "123456", wantErr: ErrInvalidCode},
		{name: "empty code", code: "", wantErr: ErrInvalidCode},
		{name: "too short", code: "12345", wantErr: ErrInvalidCode},
		{name: "too long", code: "1234567", wantErr: ErrInvalidCode},
		{name: "not numeric", code: "abcdef", wantErr: ErrInvalidCode},
		{name: "negative", code: "-12345", wantErr: ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authenticate(context.Background(), tt.code)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestAuthenticateSteps tests drift reporting: a client ahead of the server
// consumes more forward steps than one in sync.
func TestAuthenticateSteps(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})

	tests := []struct {
		name      string
		code      string
		wantSteps int
	}{
		{name: "in sync", code: "050471", wantSteps: 2},
		{name: "client one step behind", code: "081804", wantSteps: 1},
		{name: "client two steps ahead", code: "306183", wantSteps: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := auth.AuthenticateSteps(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if steps != tt.wantSteps {
				t.Errorf("steps = %d, want %d", steps, tt.wantSteps)
			}
		})
	}
}

// TestAuthenticateRoundTrip tests that a freshly generated code always
// authenticates, without a pinned clock.
func TestAuthenticateRoundTrip(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	for _, digits := range []int{6, 7, 8} {
		auth, err := NewAuthenticator(Config{Secret: secret, Digits: digits})
		if err != nil {
			t.Fatalf("failed to create authenticator: %v", err)
		}

		code, err := auth.GenerateCode()
		if err != nil {
			t.Fatalf("failed to generate code: %v", err)
		}
		if len(code) != digits {
			t.Errorf("expected %d digit code, got %q", digits, code)
		}

		if err := auth.Authenticate(context.Background(), code); err != nil {
			t.Errorf("digits=%d: failed to authenticate own code: %v", digits, err)
		}
	}
}

// TestVerifyCounter tests HOTP-style validation and resynchronization.
func TestVerifyCounter(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})

	tests := []struct {
		name        string
		code        string
		counter     uint64
		wantCounter uint64
		wantErr     error
	}{
		// Codes for counters 42..45 under the test secret.
		{name: "exact counter", code: "435478", counter: 42, wantCounter: 43},
		{name: "two steps ahead with leading zeros", code: "000152", counter: 42, wantCounter: 45},
		{name: "three steps ahead", code: "287422", counter: 42, wantCounter: 46},
		{name: "beyond threshold", code: "435478", counter: 43, wantErr: ErrInvalidCode},
		{name: "wrong length", code: "0152", counter: 42, wantErr: ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := auth.VerifyCounter(context.Background(), tt.code, tt.counter)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next != tt.wantCounter {
				t.Errorf("next counter = %d, want %d", next, tt.wantCounter)
			}
		})
	}
}

// TestRemaining tests rollover reporting at the pinned clock.
func TestRemaining(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})
	// testNow is one second past a step boundary.
	if got := auth.Remaining(); got != 29 {
		t.Errorf("Remaining = %d, want 29", got)
	}
}

// TestProvisioningURI tests URI generation from the configured credential.
func TestProvisioningURI(t *testing.T) {
	auth := newTestAuthenticator(t, Config{
		Secret:      testSecret,
		Issuer:      "TestApp",
		AccountName: "user@example.com",
	})

	uri := auth.ProvisioningURI()
	wantContain := []string{
		"otpauth://totp/",
		"TestApp:user@example.com",
		"secret=" + testSecret,
		"issuer=TestApp",
		"algorithm=SHA1",
		"digits=6",
		"period=30",
	}
	for _, want := range wantContain {
		if !strings.Contains(uri, want) {
			t.Errorf("URI %q does not contain %q", uri, want)
		}
	}
}

// TestQRCode tests QR rendering of the provisioning URI.
func TestQRCode(t *testing.T) {
	auth := newTestAuthenticator(t, Config{
		Secret:      testSecret,
		Issuer:      "TestApp",
		AccountName: "user@example.com",
	})

	svg, err := auth.QRCodeSVG()
	if err != nil {
		t.Fatalf("failed to render SVG: %v", err)
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete SVG document")
	}

	png, err := auth.QRCodePNG(256)
	if err != nil {
		t.Fatalf("failed to render PNG: %v", err)
	}
	if len(png) == 0 {
		t.Error("expected non-empty PNG")
	}
}

// TestGenerateSecret tests secret generation.
func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}
	if secret == "" {
		t.Fatal("expected non-empty secret")
	}

	// 160 bits encode to 32 unpadded base32 characters.
	if len(secret) != 32 {
		t.Errorf("expected 32 character secret, got %d", len(secret))
	}
	for _, c := range secret {
		if !((c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7')) {
			t.Errorf("invalid character in secret: %c", c)
		}
	}

	secret2, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate second secret: %v", err)
	}
	if secret == secret2 {
		t.Error("generated secrets should be different")
	}
}

// TestContextCancellation tests context cancellation.
func TestContextCancellation(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := auth.Authenticate(ctx, "050471")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	_, err = auth.VerifyCounter(ctx, "435478", 42)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestContextTimeout tests context timeout.
func TestContextTimeout(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond) // Ensure timeout

	err := auth.Authenticate(ctx, "050471")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

// TestNilContext tests that a nil context is tolerated.
func TestNilContext(t *testing.T) {
	auth := newTestAuthenticator(t, Config{Secret: testSecret})

	if err := auth.Authenticate(nil, "050471"); err != nil {
		t.Errorf("unexpected error with nil context: %v", err)
	}
}

// TestNilAuthenticator tests operations on a nil authenticator.
func TestNilAuthenticator(t *testing.T) {
	var auth *Authenticator

	t.Run("Authenticate", func(t *testing.T) {
		if err := auth.Authenticate(context.Background(), "123456"); !errors.Is(err, ErrNilAuthenticator) {
			t.Errorf("expected ErrNilAuthenticator, got %v", err)
		}
	})

	t.Run("VerifyCounter", func(t *testing.T) {
		if _, err := auth.VerifyCounter(context.Background(), "123456", 0); !errors.Is(err, ErrNilAuthenticator) {
			t.Errorf("expected ErrNilAuthenticator, got %v", err)
		}
	})

	t.Run("GenerateCode", func(t *testing.T) {
		if _, err := auth.GenerateCode(); !errors.Is(err, ErrNilAuthenticator) {
			t.Errorf("expected ErrNilAuthenticator, got %v", err)
		}
	})

	t.Run("ProvisioningURI", func(t *testing.T) {
		if uri := auth.ProvisioningURI(); uri != "" {
			t.Errorf("expected empty URI, got %q", uri)
		}
	})

	t.Run("Remaining", func(t *testing.T) {
		if got := auth.Remaining(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

// TestDefaults tests default configuration values.
func TestDefaults(t *testing.T) {
	auth, err := NewAuthenticator(Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	if auth.cfg.Digits != 6 {
		t.Errorf("default digits = %d, want 6", auth.cfg.Digits)
	}
	if auth.cfg.Period != 30 {
		t.Errorf("default period = %d, want 30", auth.cfg.Period)
	}
	if auth.cfg.Drift != 2 {
		t.Errorf("default drift = %d, want 2", auth.cfg.Drift)
	}
	if auth.cfg.Threshold != 15 {
		t.Errorf("default threshold = %d, want 15", auth.cfg.Threshold)
	}
}
