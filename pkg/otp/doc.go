// Package otp provides TOTP (RFC 6238) authentication with drift-tolerant,
// resynchronizing verification.
//
// Codes are derived by the hotp and totp packages in this module: HMAC-SHA1
// over a time-step counter, dynamic truncation, and reduction to a 6, 7, or
// 8 digit decimal code. Verification searches a bounded forward window of
// counters so that client clocks up to the configured drift ahead of or
// behind the server still authenticate.
//
// # TOTP Example
//
// Time-based OTP for use with authenticator apps:
//
//	config := otp.Config{
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "MyApp",
//	    AccountName: "user@example.com",
//	    Digits:      6,
//	    Period:      30,
//	    Drift:       2, // Tolerate 2 steps of clock skew either way
//	}
//
//	auth, err := otp.NewAuthenticator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a code from user's authenticator app
//	err = auth.Authenticate(ctx, "123456")
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
//	// Generate provisioning URI for QR code
//	uri := auth.ProvisioningURI()
//	svg, err := auth.QRCodeSVG()
//	// Display svg for the user to scan
//
// # Counter-based use
//
// For HOTP-style validation against a counter the caller persists:
//
//	newCounter, err := auth.VerifyCounter(ctx, "123456", currentCounter)
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	} else {
//	    // Store newCounter for next validation
//	    currentCounter = newCounter
//	}
//
// The returned counter is one past the matched step, so a code cannot be
// replayed against the stored counter. Updates to the persisted counter must
// be serialized per principal by the caller.
//
// # Secret Generation
//
// Generate a cryptographically random secret:
//
//	secret, err := otp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use secret in Config.Secret
//
// # Algorithm
//
// Only SHA-1 is supported. Requests for other algorithms have no
// representation anywhere in this module; provisioning URIs always advertise
// SHA1. This is a deliberate limitation matching the deployed base of
// authenticator apps.
//
// # Thread Safety
//
// The Authenticator type is safe for concurrent use. Multiple goroutines
// can call its methods simultaneously.
//
// # Context Support
//
// Authentication methods accept a context.Context for cancellation and
// timeout support:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	err := auth.Authenticate(ctx, code)
package otp
