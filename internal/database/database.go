// Package database provides SQLite database operations for the CSV converter
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"csv2sqlite/internal/models"
	"csv2sqlite/internal/schema"
)

// DB interface defines database operations for easier testing and extensibility
// This interface could be extended to support other database backends (PostgreSQL, MySQL, etc.)
type DB interface {
	Close() error
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Begin() (*sql.Tx, error)
}

// sqliteDB implements the DB interface for SQLite
type sqliteDB struct {
	*sql.DB
}

// Initialize creates a new SQLite database connection
// Creates the database file if it doesn't exist
func Initialize(dbPath string) (DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &sqliteDB{sqlDB}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CreateTable creates the destination table for a parsed dataset.
// The default replace policy drops any existing table of the same name
// first; append mode leaves existing rows in place and only creates the
// table when missing.
func CreateTable(db DB, t *models.Table, appendMode bool) error {
	if !appendMode {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + schema.QuoteIdent(t.Name)); err != nil {
			return fmt.Errorf("failed to drop existing table: %w", err)
		}
	}

	if _, err := db.Exec(schema.CreateTableSQL(t, appendMode)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// InsertRows bulk-inserts all table rows inside a single transaction, so
// a failed job never leaves a partially written table behind.
// Returns the number of rows inserted.
func InsertRows(db DB, t *models.Table) (int64, error) {
	if len(t.Rows) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL(t))
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var insertedCount int64
	for _, row := range t.Rows {
		args := make([]interface{}, len(row))
		for i, value := range row {
			args[i] = value
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert row: %w", err)
		}
		insertedCount++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert: %w", err)
	}
	return insertedCount, nil
}

// insertSQL builds the parameterized INSERT statement for the table
func insertSQL(t *models.Table) string {
	columns := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = schema.QuoteIdent(col.Name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.QuoteIdent(t.Name),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))
}

// CreateIndexes creates a non-unique index for each requested column.
// Columns absent from the table schema are skipped, and individual index
// creation failures are ignored so a bad index never fails the job.
// Returns the columns that were actually indexed.
func CreateIndexes(db DB, t *models.Table, columns []string) []string {
	var created []string
	for _, col := range columns {
		if !t.HasColumn(col) {
			continue
		}
		if _, err := db.Exec(schema.IndexSQL(t.Name, col)); err != nil {
			continue
		}
		created = append(created, col)
	}
	return created
}

// ExecuteQuery executes a SQL query and returns results as a slice of maps
// This generic approach allows for flexible query results without predefined structs
func ExecuteQuery(db DB, query string) ([]map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		// Handle NULL values and convert byte slices to strings
		row := make(map[string]interface{})
		for i, column := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[column] = val
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return results, nil
}
