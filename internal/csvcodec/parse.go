// Package csvcodec reads and writes records as RFC 4180 CSV. Cells are
// untyped: every non-empty cell is read back as a string.
package csvcodec

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

const byteOrderMark = "\ufeff"

// Parse reads CSV input and converts it into records. The first row is the
// header. An empty cell becomes Null, a cell missing from a short row becomes
// Null, and cells beyond the header width are dropped.
func Parse(reader io.Reader, opts Options) ([]*models.Record, error) {
	r := csv.NewReader(reader)
	r.Comma = opts.comma()
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.NewFormatError("CSV input has no header row", errors.ErrNoHeader)
	}
	if err != nil {
		return nil, readError(err)
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		header[i] = strings.TrimSpace(name)
	}

	records := []*models.Record{}
	for {
		row, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}
		records = append(records, recordFromRow(header, row))
	}
	return records, nil
}

// ParseString parses CSV from a string with the given options.
func ParseString(csvString string, opts Options) ([]*models.Record, error) {
	return Parse(strings.NewReader(csvString), opts)
}

// ParseBytes parses CSV held in memory with the given options.
func ParseBytes(data []byte, opts Options) ([]*models.Record, error) {
	return Parse(bytes.NewReader(data), opts)
}

func recordFromRow(header, row []string) *models.Record {
	record := models.NewRecord()
	for i, name := range header {
		if i >= len(row) || row[i] == "" {
			record.Set(name, models.NullValue)
			continue
		}
		record.Set(name, models.String(row[i]))
	}
	return record
}

func readError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.NewFormatError(
			fmt.Sprintf("CSV syntax error on line %d, column %d: %v", parseErr.Line, parseErr.Column, parseErr.Err),
			errors.ErrInvalidCSV,
		)
	}
	return errors.NewIOError("failed to read CSV input", err)
}
