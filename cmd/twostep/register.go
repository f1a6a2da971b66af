package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhahn/go-twostep/pkg/otp"
	"github.com/jhahn/go-twostep/pkg/secret"
)

// registerFlags holds the command-line flags for credential provisioning.
type registerFlags struct {
	issuer  string
	account string
	bits    int
	digits  int
	period  uint64
	qrOut   string
}

// newRegisterCommand creates the register cobra command.
func newRegisterCommand() *cobra.Command {
	flags := &registerFlags{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Provision a new TOTP credential",
		Long: `Generate a fresh shared secret and print the provisioning URI for it.

The secret is printed once and never stored; persisting it for the principal
is the caller's responsibility. With --qr-out an SVG QR code of the
provisioning URI is written for the user to scan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.issuer, "issuer", "", "issuing organization name (required)")
	cmd.Flags().StringVar(&flags.account, "account", "", "account identifier, e.g. an email address (required)")
	cmd.Flags().IntVar(&flags.bits, "bits", secret.DefaultBits, "secret size in bits (multiple of 8)")
	cmd.Flags().IntVar(&flags.digits, "digits", 6, "code length (6, 7, or 8)")
	cmd.Flags().Uint64Var(&flags.period, "period", 30, "time step in seconds")
	cmd.Flags().StringVar(&flags.qrOut, "qr-out", "", "write an SVG QR code to this file")

	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func runRegister(cmd *cobra.Command, flags *registerFlags) error {
	raw, err := secret.Generate(flags.bits)
	if err != nil {
		return err
	}
	encoded := secret.Encode(raw)

	auth, err := otp.NewAuthenticator(otp.Config{
		Secret:      encoded,
		Issuer:      flags.issuer,
		AccountName: flags.account,
		Digits:      flags.digits,
		Period:      flags.period,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Secret: %s\n", encoded)
	fmt.Fprintf(out, "URI:    %s\n", auth.ProvisioningURI())

	if flags.qrOut != "" {
		svg, err := auth.QRCodeSVG()
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.qrOut, []byte(svg), 0o600); err != nil {
			return fmt.Errorf("writing QR code: %w", err)
		}
		fmt.Fprintf(out, "QR:     %s\n", flags.qrOut)
	}
	return nil
}
