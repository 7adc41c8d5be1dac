// Package commands implements CLI commands.
package commands

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alloyorm/alloy"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func openDatabase(cmd *cobra.Command) (*alloy.Database, error) {
	url, _ := cmd.Flags().GetString("url")
	return alloy.Open(url)
}

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			start := time.Now()
			if err := db.Client.Ping(ctx); err != nil {
				color.Red("✗ connection failed: %v", err)
				return err
			}
			color.Green("✓ %s reachable (%s)", db.Client.Dialect(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <statement>",
		Short: "Execute a raw SQL statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := db.Client.ExecContext(cmd.Context(), args[0])
			if err != nil {
				color.Red("✗ %v", err)
				return err
			}
			affected, _ := res.RowsAffected()
			color.Green("✓ ok, %d row(s) affected", affected)
			return nil
		},
	}
}

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Client.QueryContext(cmd.Context(), fmt.Sprintf("select count(*) from %s", args[0]))
			if err != nil {
				return err
			}
			defer rows.Close()

			var n int64
			if rows.Next() {
				if err := rows.Scan(&n); err != nil {
					return err
				}
			}
			if err := rows.Err(); err != nil {
				return err
			}
			fmt.Printf("%s: %d\n", args[0], n)
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("alloy version %s\n", Version)
			fmt.Printf("  Git Commit: %s\n", GitCommit)
			fmt.Printf("  Go Version: %s\n", runtime.Version())
			fmt.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
