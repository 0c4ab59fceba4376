// Package main provides the CLI entry point for the CSV-to-SQLite converter
// This tool provides two invocation modes:
// 1. convert - Load a single CSV file into an indexed SQLite table
// 2. batch - Run a list of conversion jobs from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"csv2sqlite/internal/commands"
)

func main() {
	// Root command defines the base command when called without any subcommands
	var rootCmd = &cobra.Command{
		Use:   "csv2sqlite",
		Short: "Convert CSV files into indexed SQLite tables",
		Long: `csv2sqlite converts CSV files into SQLite database tables.

It sanitizes column names into safe, unique identifiers, best-effort
parses date-named columns, and creates heuristic secondary indexes on
the resulting table.

Single-file mode:
  csv2sqlite convert --file data.csv --db data.db --table data

Batch mode (one job per entry, failures isolated per job):
  csv2sqlite batch --config jobs.yaml`,
		// Exactly one mode is valid per invocation; neither is an error
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			return fmt.Errorf("specify a mode: convert or batch")
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
