// Package commands implements the CLI commands for the CSV converter
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"csv2sqlite/internal/config"
	"csv2sqlite/internal/ingest"
)

// NewConvertCommand creates the 'convert' subcommand for single-file mode
// Usage: csv2sqlite convert --file data.csv [--db data.db] [--table data] [--index col1,col2] [--append]
func NewConvertCommand() *cobra.Command {
	var csvFile string
	var dbFile string
	var tableName string
	var indexColumns []string
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a CSV file into an indexed SQLite table",
		Long: `Read a CSV file and write it to a SQLite database table.

Column names are sanitized (lowercase, non-alphanumeric runs become
underscores, duplicates deduplicated), date-named columns are coerced to
DATETIME where every value parses, and secondary indexes are created
either on the columns you name with --index or on heuristic suggestions
(short id-like names, temporal names, low-cardinality categorical columns).

The file is read trying utf-8, latin1, iso-8859-1 and cp1252 in turn, with
a permissive parse as a last resort.

By default the destination table is replaced when it already exists.
Use --append to keep existing rows.

Example:
  csv2sqlite convert --file orders.csv
  csv2sqlite convert --file orders.csv --db sales.db --table orders --index region,order_date`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertCommand(csvFile, dbFile, tableName, indexColumns, appendMode, cmd.Flags().Changed("index"))
		},
	}

	cmd.Flags().StringVarP(&csvFile, "file", "f", "", "Path to CSV file (required)")
	cmd.Flags().StringVarP(&dbFile, "db", "d", "", config.DatabaseFileDescription)
	cmd.Flags().StringVarP(&tableName, "table", "t", "", config.TableNameDescription)
	cmd.Flags().StringSliceVar(&indexColumns, "index", nil, "Columns to index (default: heuristic suggestions)")
	cmd.Flags().BoolVar(&appendMode, "append", false, "Append rows to an existing table (default: replace existing data)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// runConvertCommand executes the single-file conversion logic
func runConvertCommand(csvFile, dbFile, tableName string, indexColumns []string, appendMode, indexesSet bool) error {
	// Distinguish "--index not given" (ask the advisor) from an explicit,
	// possibly empty, column list
	if !indexesSet {
		indexColumns = nil
	} else if indexColumns == nil {
		indexColumns = []string{}
	}

	fmt.Printf("Loading CSV file: %s\n", csvFile)
	if appendMode {
		fmt.Printf("Mode: Append to existing table\n")
	} else {
		fmt.Printf("Mode: Replace existing data\n")
	}

	result, err := ingest.Run(ingest.Job{
		Source:       csvFile,
		Destination:  dbFile,
		Table:        tableName,
		IndexColumns: indexColumns,
		Append:       appendMode,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Summary())
	return nil
}
