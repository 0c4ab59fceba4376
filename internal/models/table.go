// Package models defines the data structures used throughout the application
package models

// ColumnType represents the storage type assigned to a column
// Only two types exist: date-named columns whose values all parse as
// timestamps become DATETIME, everything else stays TEXT
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeDatetime
)

// String returns the string representation of ColumnType
func (ct ColumnType) String() string {
	if ct == TypeDatetime {
		return "DATETIME"
	}
	return "TEXT"
}

// SQLType returns the SQLite type string for the column type
func (ct ColumnType) SQLType() string {
	return ct.String()
}

// Column represents a single table column: the sanitized name used in SQL,
// the raw CSV header it came from, and the assigned storage type
type Column struct {
	Name string
	Raw  string
	Type ColumnType
}

// Table is an in-memory tabular dataset parsed from a CSV file.
// Rows are aligned with Columns; every row has exactly len(Columns) fields.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// ColumnNames returns the sanitized column names in schema order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether name is a column of the table
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}
