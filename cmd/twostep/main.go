package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jhahn/go-twostep/pkg/otp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, otp.ErrInvalidCode) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
