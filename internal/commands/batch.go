package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"csv2sqlite/internal/config"
	"csv2sqlite/internal/ingest"
)

// NewBatchCommand creates the 'batch' subcommand for declarative batch mode
// Usage: csv2sqlite batch --config jobs.yaml
func NewBatchCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every ingestion job listed in a YAML batch file",
		Long: `Execute a list of CSV-to-SQLite conversion jobs from a YAML file.

Each job names a source CSV, a destination database and a table, with an
optional explicit index column list and append flag:

  jobs:
    - source: data/orders.csv
      destination: out/orders.db
      table: orders
      index_columns: [region, order_date]
    - source: data/people.csv
      destination: out/people.db
      table: people

Destination directories are created as needed. Jobs are isolated: a
failing entry is reported and counted, and the rest of the batch still
runs.

Example:
  csv2sqlite batch --config jobs.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchCommand(configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML batch file (required)")
	cmd.MarkFlagRequired("config")

	return cmd
}

// runBatchCommand loads the batch file and executes its jobs.
// Only a broken batch file is fatal; per-job failures are reported in the
// aggregate count and never flip the exit status.
func runBatchCommand(configFile string) error {
	batch, err := config.LoadBatch(configFile)
	if err != nil {
		return err
	}

	succeeded, failed := executeBatch(batch.Jobs)
	fmt.Printf("\nBatch complete: %d succeeded, %d failed\n", succeeded, failed)
	return nil
}

// executeBatch runs each job in order, isolating failures per job
func executeBatch(jobs []config.BatchJob) (succeeded, failed int) {
	for i, job := range jobs {
		if err := runBatchJob(job); err != nil {
			fmt.Fprintf(os.Stderr, "Job %d (%s): %v\n", i+1, job.Source, err)
			failed++
			continue
		}
		succeeded++
	}
	return succeeded, failed
}

// runBatchJob validates one entry, prepares its destination directory and
// runs the ingestion pipeline
func runBatchJob(job config.BatchJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(job.Destination); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
	}

	result, err := ingest.Run(ingest.Job{
		Source:       job.Source,
		Destination:  job.Destination,
		Table:        job.Table,
		IndexColumns: job.IndexColumns,
		Append:       job.Append,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Summary())
	return nil
}
