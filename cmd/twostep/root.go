package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand creates the root cobra command and registers subcommands.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twostep",
		Short: "Generate and verify time-based one-time passwords",
		Long: `twostep provisions and verifies TOTP credentials (RFC 6238).

Typical flow:
  1. Register a credential for a user: prints the shared secret and a
     provisioning URI, optionally rendering a QR code to scan.
  2. The user adds the credential to an authenticator app.
  3. Authenticate codes the user submits; clock drift within the configured
     window is tolerated and resynchronized automatically.

Examples:
  # Provision a credential and write a scannable QR code
  twostep register --issuer ExampleApp --account user@example.com --qr-out totp.svg

  # Show the current code for a secret (client side)
  twostep generate --secret JBSWY3DPEHPK3PXP

  # Verify a submitted code (server side)
  twostep authenticate --secret JBSWY3DPEHPK3PXP --code 123456`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(
		newRegisterCommand(),
		newGenerateCommand(),
		newAuthenticateCommand(),
	)
	return cmd
}
