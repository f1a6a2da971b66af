package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jhahn/go-twostep/pkg/otp"
)

// authenticateFlags holds the command-line flags for verification.
type authenticateFlags struct {
	secret    string
	code      string
	digits    int
	period    uint64
	drift     uint64
	threshold int
}

// newAuthenticateCommand creates the authenticate cobra command.
func newAuthenticateCommand() *cobra.Command {
	flags := &authenticateFlags{}
	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Verify a submitted code",
		Long: `Verify a code against the current time with drift tolerance.

The code can be passed with --code; otherwise it is prompted for on stdin
(without echo when stdin is a terminal). On success the number of time steps
of clock skew that were resynchronized is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthenticate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.secret, "secret", "", "base32-encoded shared secret (required)")
	cmd.Flags().StringVar(&flags.code, "code", "", "code to verify; prompted for when omitted")
	cmd.Flags().IntVar(&flags.digits, "digits", 6, "code length (6, 7, or 8)")
	cmd.Flags().Uint64Var(&flags.period, "period", 30, "time step in seconds")
	cmd.Flags().Uint64Var(&flags.drift, "drift", 2, "tolerated clock skew in time steps")
	cmd.Flags().IntVar(&flags.threshold, "threshold", 15, "maximum forward search steps")

	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func runAuthenticate(cmd *cobra.Command, flags *authenticateFlags) error {
	auth, err := otp.NewAuthenticator(otp.Config{
		Secret:    flags.secret,
		Digits:    flags.digits,
		Period:    flags.period,
		Drift:     flags.drift,
		Threshold: flags.threshold,
	})
	if err != nil {
		return err
	}

	code := flags.code
	if code == "" {
		code, err = promptCode(cmd)
		if err != nil {
			return err
		}
	}

	steps, err := auth.AuthenticateSteps(cmd.Context(), code)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK (resynchronized %d steps)\n", steps)
	return nil
}

// promptCode reads a code from stdin, suppressing echo on terminals.
func promptCode(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Code: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading code: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading code: %w", err)
		}
		return "", fmt.Errorf("no code on stdin")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
