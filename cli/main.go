// Package main is the entry point for the alloy CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alloyorm/alloy/cli/commands"
	"github.com/alloyorm/alloy/internal/debug"
)

func main() {
	debug.InitFromEnv()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "alloy",
		Short: "Alloy database CLI",
		Long:  "Alloy is a small multi-dialect ORM; this CLI checks connections and runs ad-hoc statements against the configured database",
	}

	rootCmd.PersistentFlags().String("url", "", "database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewExecCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd.Execute()
}
