// Package schema turns raw CSV headers and values into a SQLite-ready
// table definition: sanitized unique column names, best-effort datetime
// coercion for date-named columns, and DDL generation.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"csv2sqlite/internal/models"
)

// CleanColumnName maps an arbitrary header value to a safe identifier:
// trim, ASCII-lowercase, collapse each run of characters outside [0-9a-z]
// to a single underscore, strip leading/trailing underscores, prefix "c_"
// when the result starts with a digit, "col" when it comes out empty.
// Total and deterministic: no input fails, and clean names pass through
// unchanged.
func CleanColumnName(name string) string {
	out := cleanIdent(name)
	if out == "" {
		return "col"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "c_" + out
	}
	return out
}

// CleanTableName cleans like CleanColumnName but keeps a leading digit
// (table identifiers are always quoted in generated SQL) and falls back
// to "table_data" for an empty result.
func CleanTableName(name string) string {
	out := cleanIdent(name)
	if out == "" {
		return "table_data"
	}
	return out
}

// cleanIdent lowercases ASCII letters and collapses everything else into
// single underscores between alphanumeric runs. Lowercasing is restricted
// to the ASCII range so the output never depends on locale; non-ASCII
// bytes are treated as separators.
func cleanIdent(name string) string {
	trimmed := strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(trimmed))
	pendingSep := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteByte(c)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// UniqueColumnNames enforces uniqueness over an ordered list of cleaned
// names: the first occurrence keeps its name, later collisions get _1,
// _2, ... appended in first-seen order.
func UniqueColumnNames(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			out[i] = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
			out[i] = name
		}
	}
	return out
}

// BuildColumns sanitizes and deduplicates raw CSV headers into table columns
func BuildColumns(headers []string) []models.Column {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = CleanColumnName(h)
	}
	names = UniqueColumnNames(names)

	columns := make([]models.Column, len(headers))
	for i := range headers {
		columns[i] = models.Column{Name: names[i], Raw: headers[i], Type: models.TypeText}
	}
	return columns
}

// isDatetimeName reports whether a sanitized column name looks temporal
func isDatetimeName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") || strings.Contains(lower, "time")
}

// datetimeFormats are tried in order when coercing column values
var datetimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006-01-02",
}

// CoerceDatetimes rewrites every date-named column whose values all parse
// as timestamps into the canonical "2006-01-02 15:04:05" form and marks it
// DATETIME. A single unparseable value leaves the whole column untouched,
// so coercion is best-effort and never an error.
func CoerceDatetimes(t *models.Table) {
	for i := range t.Columns {
		if !isDatetimeName(t.Columns[i].Name) {
			continue
		}
		if coerceColumn(t, i) {
			t.Columns[i].Type = models.TypeDatetime
		}
	}
}

// coerceColumn parses every non-empty value of column col. It only writes
// back when all of them parse and at least one value is present.
func coerceColumn(t *models.Table, col int) bool {
	parsed := make([]string, len(t.Rows))
	any := false
	for r, row := range t.Rows {
		value := strings.TrimSpace(row[col])
		if value == "" {
			continue
		}
		ts, ok := ParseTimestamp(value)
		if !ok {
			return false
		}
		parsed[r] = ts.Format("2006-01-02 15:04:05")
		any = true
	}
	if !any {
		return false
	}
	for r := range t.Rows {
		if parsed[r] != "" {
			t.Rows[r][col] = parsed[r]
		}
	}
	return true
}

// ParseTimestamp parses a value as a UNIX timestamp (seconds or
// milliseconds within a reasonable range) or one of the common textual
// datetime formats.
func ParseTimestamp(value string) (time.Time, bool) {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		// Reasonable range: January 1, 1980 to January 1, 2050
		if n >= 315532800 && n <= 2524608000 {
			return time.Unix(n, 0).UTC(), true
		}
		// Millisecond timestamps (13 digits)
		if n >= 315532800000 && n <= 2524608000000 {
			return time.Unix(n/1000, (n%1000)*1000000).UTC(), true
		}
		return time.Time{}, false
	}

	for _, format := range datetimeFormats {
		if ts, err := time.Parse(format, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// QuoteIdent double-quotes an identifier so cleaned names that collide
// with SQL keywords stay valid.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// CreateTableSQL generates the CREATE TABLE statement for the table.
// With ifNotExists set the statement leaves an existing table in place,
// which is how the append policy is implemented.
func CreateTableSQL(t *models.Table, ifNotExists bool) string {
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = fmt.Sprintf("%s %s", QuoteIdent(col.Name), col.Type.SQLType())
	}

	clause := ""
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (\n  %s\n)",
		clause,
		QuoteIdent(t.Name),
		strings.Join(defs, ",\n  "))
}

// IndexName returns the fixed index naming convention idx_<table>_<column>
func IndexName(table, column string) string {
	return fmt.Sprintf("idx_%s_%s", table, column)
}

// IndexSQL generates the non-unique index statement for one column
func IndexSQL(table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		QuoteIdent(IndexName(table, column)),
		QuoteIdent(table),
		QuoteIdent(column))
}
