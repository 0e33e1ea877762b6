package csvcodec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/jsoncodec"
	"github.com/mcncl/dataconv/internal/models"
	"github.com/samber/lo"
)

// Options controls CSV reading and writing
type Options struct {
	// WithHeaders writes the header row first. Only the writer uses it.
	WithHeaders bool
	// Delimiter separates cells. Zero means ','.
	Delimiter rune
}

// DefaultOptions returns comma-separated output with a header row.
func DefaultOptions() Options {
	return Options{WithHeaders: true, Delimiter: ','}
}

func (o Options) comma() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Header returns the union of field names across records, sorted
// ascending.
func Header(records []*models.Record) []string {
	names := lo.Uniq(lo.Flatten(lo.Map(records, func(r *models.Record, _ int) []string {
		return r.Keys()
	})))
	sort.Strings(names)
	return names
}

// Write serializes records as CSV. Columns are the sorted union of all
// field names. A record without a column gets an empty cell. Lists and
// Maps are written as compact JSON text.
func Write(w io.Writer, records []*models.Record, opts Options) error {
	header := Header(records)
	if len(header) == 0 {
		return nil
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = opts.comma()

	if opts.WithHeaders {
		if err := writeRow(cw, &buf, header); err != nil {
			return err
		}
	}

	row := make([]string, len(header))
	for _, record := range records {
		for i, name := range header {
			v, _ := record.Get(name)
			cell, err := formatCell(v)
			if err != nil {
				return errors.NewUnsupportedValueError(fmt.Sprintf("field '%s' cannot be written as CSV", name), err)
			}
			row[i] = cell
		}
		if err := writeRow(cw, &buf, row); err != nil {
			return err
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.NewIOError("failed to write CSV output", err)
	}
	return nil
}

// writeRow writes one row. csv.Writer emits a lone empty field as a blank
// line, which readers skip, so that case is written as "" instead.
func writeRow(cw *csv.Writer, buf *bytes.Buffer, row []string) error {
	if len(row) == 1 && row[0] == "" {
		cw.Flush()
		buf.WriteString("\"\"\n")
		return cw.Error()
	}
	if err := cw.Write(row); err != nil {
		return errors.NewFormatError("failed to encode CSV row", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewFormatError("failed to encode CSV row", err)
	}
	return nil
}

func formatCell(v models.Value) (string, error) {
	switch val := models.OrNull(v).(type) {
	case models.Null:
		return "", nil
	case models.List, *models.Map:
		text, err := jsoncodec.MarshalValue(val)
		if err != nil {
			return "", err
		}
		return string(text), nil
	default:
		return val.String(), nil
	}
}
