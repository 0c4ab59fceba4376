// Package parser reads delimited files into raw headers and records,
// trying an ordered list of text encodings before falling back to a
// permissive parse mode.
package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// defaultEncodings are attempted in order before the permissive fallback.
// latin1 decoding is total over bytes, so entries after it only matter if
// strict CSV parsing of the latin1 text fails.
var defaultEncodings = []string{"utf-8", "latin1", "iso-8859-1", "cp1252"}

var decoders = map[string]*charmap.Charmap{
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"cp1252":     charmap.Windows1252,
}

// ReadFile reads and parses a CSV file, returning the header row and all
// data records. Each encoding in defaultEncodings is tried with a strict
// parse (fixed field count locked to the header width); if every attempt
// fails, a final permissive attempt allows lazy quotes and ragged rows,
// padding or truncating them to the header width.
func ReadFile(path string) ([]string, [][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	var lastErr error
	for _, name := range defaultEncodings {
		text, err := decode(raw, name)
		if err != nil {
			lastErr = err
			continue
		}
		headers, records, err := parseStrict(text)
		if err != nil {
			lastErr = err
			continue
		}
		return headers, records, nil
	}

	// Final attempt: permissive parse over a latin1 decode, which accepts
	// any byte sequence.
	text, err := decode(raw, "latin1")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV %s: %w", path, lastErr)
	}
	headers, records, err := parseLazy(text)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV %s: last error: %v; final attempt error: %w", path, lastErr, err)
	}
	return headers, records, nil
}

// decode converts raw file bytes to UTF-8 text using the named encoding
func decode(raw []byte, name string) ([]byte, error) {
	if name == "utf-8" {
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("input is not valid UTF-8")
		}
		return raw, nil
	}
	cm, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return cm.NewDecoder().Bytes(raw)
}

// parseStrict parses CSV text requiring every record to match the header
// width. The first row is always the header row.
func parseStrict(text []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(text))

	var headers []string
	var records [][]string
	lineNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV at line %d: %w", lineNumber+1, err)
		}

		lineNumber++
		if lineNumber == 1 {
			headers = record
			continue
		}
		records = append(records, record)
	}

	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("no headers found in CSV file")
	}
	return headers, records, nil
}

// parseLazy parses CSV text accepting bare quotes and variable field
// counts; short rows are padded with empty fields and long rows truncated
// so all records align with the headers.
func parseLazy(text []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var headers []string
	var records [][]string
	lineNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV at line %d: %w", lineNumber+1, err)
		}

		lineNumber++
		if lineNumber == 1 {
			headers = record
			continue
		}
		records = append(records, alignRecord(record, len(headers)))
	}

	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("no headers found in CSV file")
	}
	return headers, records, nil
}

// alignRecord pads or truncates a record to the given width
func alignRecord(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	if len(record) > width {
		return record[:width]
	}
	aligned := make([]string, width)
	copy(aligned, record)
	return aligned
}
