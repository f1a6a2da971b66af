package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhahn/go-twostep/pkg/otp"
)

// generateFlags holds the command-line flags for code generation.
type generateFlags struct {
	secret string
	digits int
	period uint64
}

// newGenerateCommand creates the generate cobra command.
func newGenerateCommand() *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the current code for a secret",
		Long: `Print the code an authenticator app would display right now, along with
the seconds remaining before it rolls over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.secret, "secret", "", "base32-encoded shared secret (required)")
	cmd.Flags().IntVar(&flags.digits, "digits", 6, "code length (6, 7, or 8)")
	cmd.Flags().Uint64Var(&flags.period, "period", 30, "time step in seconds")

	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	auth, err := otp.NewAuthenticator(otp.Config{
		Secret: flags.secret,
		Digits: flags.digits,
		Period: flags.period,
	})
	if err != nil {
		return err
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (valid for %ds)\n", code, auth.Remaining())
	return nil
}
