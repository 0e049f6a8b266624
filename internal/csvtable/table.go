// Package csvtable converts between typed records and CSV tables whose first
// row names the columns.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a table cannot be decoded.
var ErrMalformed = errors.New("malformed table")

// utf8BOM is stripped from the first header cell; spreadsheet tools add it.
const utf8BOM = "\ufeff"

// Row gives a decoder access to one data row by column name.
type Row struct {
	index  map[string]int
	fields []string
	line   int
}

// Get returns the value of the named column.
func (r Row) Get(column string) string {
	return r.fields[r.index[column]]
}

// Int parses the named column as a base-10 integer.
func (r Row) Int(column string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.Get(column)))
	if err != nil {
		return 0, r.fieldError(column, err)
	}
	return v, nil
}

// Float parses the named column as a 64-bit float.
func (r Row) Float(column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Get(column)), 64)
	if err != nil {
		return 0, r.fieldError(column, err)
	}
	return v, nil
}

func (r Row) fieldError(column string, err error) error {
	return fmt.Errorf("%w: line %d column %q: %v", ErrMalformed, r.line, column, err)
}

// Schema describes how records of type T map onto table columns.
type Schema[T any] struct {
	// Columns lists the header names in the order they are written.
	Columns []string
	// Encode returns one value per column, in Columns order.
	Encode func(T) []string
	// Decode builds a record from a data row.
	Decode func(Row) (T, error)
}

// Marshal writes the header row followed by one row per record.
func (s Schema[T]) Marshal(records []T) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(s.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		fields := s.Encode(rec)
		if len(fields) != len(s.Columns) {
			return nil, fmt.Errorf("record %d: encoded %d fields, want %d", i, len(fields), len(s.Columns))
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("write record %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush table: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a table. Empty input is an empty table. Header columns
// may appear in any order, but every schema column must be present.
func (s Schema[T]) Unmarshal(data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	r := csv.NewReader(bytes.NewReader(data))

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index, err := s.indexColumns(header)
	if err != nil {
		return nil, err
	}

	records := []T{}
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		line, _ := r.FieldPos(0)
		rec, err := s.Decode(Row{index: index, fields: fields, line: line})
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s Schema[T]) indexColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, col := range s.Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, col)
		}
	}
	return index, nil
}
