package main

import (
	"os"

	"github.com/arthur-debert/projman/cmd/projman"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/pterm/pterm"
)

func main() {
	rootCmd := projman.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Operation failures were already shown by the terminal host
		if !projman.IsReported(err) {
			pterm.Error.WithWriter(os.Stderr).Println(errors.UserMessage(err))
		}
		os.Exit(1)
	}
}
