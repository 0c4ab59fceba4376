// Package ingest runs one CSV-to-SQLite conversion job end to end:
// read with encoding fallback, sanitize the schema, coerce date-named
// columns, persist the table, and create heuristic indexes.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"csv2sqlite/internal/config"
	"csv2sqlite/internal/database"
	"csv2sqlite/internal/models"
	"csv2sqlite/internal/parser"
	"csv2sqlite/internal/schema"
)

// Job describes a single source-to-destination conversion.
// Destination and Table may be empty, in which case they are derived from
// the source path. A nil IndexColumns asks the advisor for suggestions;
// an empty non-nil slice means no indexes at all.
type Job struct {
	Source       string
	Destination  string
	Table        string
	IndexColumns []string
	Append       bool
}

// Result captures what a finished job produced, for summaries and tests
type Result struct {
	Table       string
	Destination string
	Rows        int64
	Columns     []models.Column
	Indexes     []string
	Sample      [][]string
}

// Run executes a job. The database connection is always closed before
// returning, including on error.
func Run(job Job) (*Result, error) {
	if _, err := os.Stat(job.Source); os.IsNotExist(err) {
		return nil, fmt.Errorf("CSV file does not exist: %s", job.Source)
	}

	destination := job.Destination
	if destination == "" {
		destination = strings.TrimSuffix(job.Source, filepath.Ext(job.Source)) + ".db"
	}

	tableName := job.Table
	if tableName == "" {
		stem := strings.TrimSuffix(filepath.Base(job.Source), filepath.Ext(job.Source))
		tableName = schema.CleanTableName(stem)
	}

	headers, records, err := parser.ReadFile(job.Source)
	if err != nil {
		return nil, err
	}

	table := &models.Table{
		Name:    tableName,
		Columns: schema.BuildColumns(headers),
		Rows:    records,
	}
	schema.CoerceDatetimes(table)

	db, err := database.Initialize(destination)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.CreateTable(db, table, job.Append); err != nil {
		return nil, err
	}

	count, err := database.InsertRows(db, table)
	if err != nil {
		return nil, err
	}

	indexColumns := job.IndexColumns
	if indexColumns == nil {
		indexColumns = schema.SuggestIndexes(table, config.DefaultMaxUniqueRatio, config.DefaultMaxIndexes)
	}
	created := database.CreateIndexes(db, table, indexColumns)

	sample := table.Rows
	if len(sample) > config.SummarySampleRows {
		sample = sample[:config.SummarySampleRows]
	}

	return &Result{
		Table:       table.Name,
		Destination: destination,
		Rows:        count,
		Columns:     table.Columns,
		Indexes:     created,
		Sample:      sample,
	}, nil
}

// Summary renders the human-readable report printed after a job
func (r *Result) Summary() string {
	destination := r.Destination
	if abs, err := filepath.Abs(destination); err == nil {
		destination = abs
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Written table '%s' to database: %s\n", r.Table, destination)
	fmt.Fprintf(&b, "Rows inserted: %d\n", r.Rows)
	b.WriteString("Columns:\n")
	for _, col := range r.Columns {
		fmt.Fprintf(&b, "  - %s (%s)\n", col.Name, col.Type)
	}
	if len(r.Indexes) > 0 {
		fmt.Fprintf(&b, "Indexes created on columns: %s\n", strings.Join(r.Indexes, ", "))
	} else {
		b.WriteString("No indexes created (no suggestions).\n")
	}
	if len(r.Sample) > 0 {
		b.WriteString("\nSample rows:\n")
		for _, row := range r.Sample {
			fmt.Fprintf(&b, "  %s\n", strings.Join(row, " | "))
		}
	}
	return b.String()
}
