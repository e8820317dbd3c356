package main

import (
	"os"

	"github.com/trebuchet-org/treasury-cli/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.HandleError(os.Stderr, err))
	}
}
