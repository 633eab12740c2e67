package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "recipe-api",
		Short: "In-memory recipe catalog HTTP service",
	}

	serve := newServeCmd()
	root.AddCommand(serve, newTokenCmd())
	// Running the binary with no subcommand serves
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
