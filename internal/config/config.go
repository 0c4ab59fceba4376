// Package config provides shared configuration constants and the
// declarative batch job file loader
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxUniqueRatio is the cardinality ratio below which a column
	// counts as categorical for index suggestion
	DefaultMaxUniqueRatio = 0.05

	// DefaultMaxIndexes caps how many indexes the advisor suggests per table
	DefaultMaxIndexes = 5

	// SummarySampleRows is how many rows the post-load summary prints
	SummarySampleRows = 3

	// DatabaseFileDescription is the help text description for the database file flag
	DatabaseFileDescription = "Path to SQLite database file (default: next to the CSV with a .db extension)"

	// TableNameDescription is the help text description for the table name flag
	TableNameDescription = "Table name to use (default: derived from the CSV filename)"
)

// BatchFile is the declarative list of ingestion jobs
type BatchFile struct {
	Jobs []BatchJob `yaml:"jobs"`
}

// BatchJob is one source-to-destination conversion entry
type BatchJob struct {
	Source       string   `yaml:"source"`
	Destination  string   `yaml:"destination"`
	Table        string   `yaml:"table"`
	IndexColumns []string `yaml:"index_columns"`
	Append       bool     `yaml:"append"`
}

// LoadBatch reads and parses a YAML batch file. Per-job validation is
// deferred to run time so one malformed entry never blocks its siblings.
func LoadBatch(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}

	if len(batch.Jobs) == 0 {
		return nil, errors.New("batch file defines no jobs")
	}
	return &batch, nil
}

// Validate reports the first missing required field of a job entry
func (j BatchJob) Validate() error {
	if j.Source == "" {
		return errors.New("job source is required")
	}
	if j.Destination == "" {
		return errors.New("job destination is required")
	}
	if j.Table == "" {
		return errors.New("job table is required")
	}
	return nil
}
