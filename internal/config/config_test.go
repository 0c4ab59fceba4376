package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfigConstants tests that the configuration constants are properly defined
func TestConfigConstants(t *testing.T) {
	if DefaultMaxUniqueRatio != 0.05 {
		t.Errorf("DefaultMaxUniqueRatio = %v, want 0.05", DefaultMaxUniqueRatio)
	}
	if DefaultMaxIndexes != 5 {
		t.Errorf("DefaultMaxIndexes = %v, want 5", DefaultMaxIndexes)
	}
	if SummarySampleRows != 3 {
		t.Errorf("SummarySampleRows = %v, want 3", SummarySampleRows)
	}
	if DatabaseFileDescription == "" {
		t.Error("DatabaseFileDescription should not be empty")
	}
	if TableNameDescription == "" {
		t.Error("TableNameDescription should not be empty")
	}
}

// writeBatchFile creates a YAML batch file in a temp directory
func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write batch file: %v", err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeBatchFile(t, `
jobs:
  - source: data/orders.csv
    destination: out/orders.db
    table: orders
    index_columns: [region, order_date]
  - source: data/people.csv
    destination: out/people.db
    table: people
    append: true
`)

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}

	if len(batch.Jobs) != 2 {
		t.Fatalf("Got %d jobs, want 2", len(batch.Jobs))
	}

	first := batch.Jobs[0]
	if first.Source != "data/orders.csv" || first.Destination != "out/orders.db" || first.Table != "orders" {
		t.Errorf("First job = %+v", first)
	}
	if len(first.IndexColumns) != 2 || first.IndexColumns[0] != "region" {
		t.Errorf("First job index columns = %v", first.IndexColumns)
	}
	if first.Append {
		t.Error("First job append should default to false")
	}
	if !batch.Jobs[1].Append {
		t.Error("Second job append should be true")
	}
	if batch.Jobs[1].IndexColumns != nil {
		t.Errorf("Second job index columns = %v, want nil (advisor)", batch.Jobs[1].IndexColumns)
	}
}

func TestLoadBatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no jobs", "jobs: []\n"},
		{"invalid yaml", "jobs: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBatchFile(t, tt.content)
			if _, err := LoadBatch(path); err == nil {
				t.Error("LoadBatch() should return an error")
			}
		})
	}
}

func TestLoadBatchMissingFile(t *testing.T) {
	if _, err := LoadBatch(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadBatch() on missing file should return an error")
	}
}

// TestLoadBatchMalformedEntryNotFatal verifies a job missing required
// fields still loads; validation is deferred so sibling jobs run
func TestLoadBatchMalformedEntryNotFatal(t *testing.T) {
	path := writeBatchFile(t, `
jobs:
  - destination: out/broken.db
    table: broken
  - source: data/ok.csv
    destination: out/ok.db
    table: ok
`)

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}
	if len(batch.Jobs) != 2 {
		t.Fatalf("Got %d jobs, want 2", len(batch.Jobs))
	}
	if err := batch.Jobs[0].Validate(); err == nil {
		t.Error("First job should fail validation")
	}
	if err := batch.Jobs[1].Validate(); err != nil {
		t.Errorf("Second job should validate: %v", err)
	}
}

func TestBatchJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     BatchJob
		wantErr bool
	}{
		{
			name:    "complete job",
			job:     BatchJob{Source: "a.csv", Destination: "a.db", Table: "a"},
			wantErr: false,
		},
		{
			name:    "missing source",
			job:     BatchJob{Destination: "a.db", Table: "a"},
			wantErr: true,
		},
		{
			name:    "missing destination",
			job:     BatchJob{Source: "a.csv", Table: "a"},
			wantErr: true,
		},
		{
			name:    "missing table",
			job:     BatchJob{Source: "a.csv", Destination: "a.db"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
