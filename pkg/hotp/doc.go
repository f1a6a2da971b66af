// Package hotp implements HMAC-based One-Time Passwords (RFC 4226).
//
// The package provides the counter-to-code derivation pipeline only:
// HMAC-SHA1 over the 8-byte big-endian counter, dynamic truncation, and
// reduction to a 6, 7, or 8 digit decimal code. Time-based derivation and
// drift-tolerant verification live in the totp package.
//
//	secret := []byte("12345678901234567890")
//	code, err := hotp.Code(secret, hotp.NewCounter(0), 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(hotp.Format(code, 6)) // "755224"
//
// Only SHA-1 is supported; this matches the deployed base of authenticator
// apps and hardware tokens and is a deliberate limitation.
package hotp
