package jsoncodec

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// Options controls JSON output
type Options struct {
	// Indent is repeated once per nesting level. Empty means compact output.
	Indent string
}

// DefaultOptions returns two-space pretty printing.
func DefaultOptions() Options {
	return Options{Indent: "  "}
}

// Write serializes records to w. Exactly one record is written as an object;
// zero or several records are written as an array. Field order follows each
// record's insertion order.
func Write(w io.Writer, records []*models.Record, opts Options) error {
	enc := &encoder{indent: opts.Indent}
	if len(records) == 1 {
		if err := enc.record(records[0]); err != nil {
			return err
		}
	} else {
		enc.open('[')
		for i, record := range records {
			enc.next(i)
			if err := enc.record(record); err != nil {
				return err
			}
		}
		enc.close(']', len(records) == 0)
	}
	enc.buf.WriteByte('\n')

	if _, err := w.Write(enc.buf.Bytes()); err != nil {
		return errors.NewIOError("failed to write JSON output", err)
	}
	return nil
}

// MarshalValue returns the compact JSON text for a single value.
func MarshalValue(v models.Value) ([]byte, error) {
	enc := &encoder{}
	if err := enc.value(v); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}

// encoder writes values in record order. With a non-empty indent the layout
// is one member per line, "key": value, and empty containers stay as [] or {}.
type encoder struct {
	buf    bytes.Buffer
	indent string
	depth  int
}

func (e *encoder) record(record *models.Record) error {
	return e.object(record.Keys(), record.Get)
}

func (e *encoder) object(keys []string, get func(string) (models.Value, bool)) error {
	e.open('{')
	for i, key := range keys {
		e.next(i)
		if err := e.quote(key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		v, _ := get(key)
		if err := e.value(v); err != nil {
			return fieldError(key, err)
		}
	}
	e.close('}', len(keys) == 0)
	return nil
}

func (e *encoder) value(v models.Value) error {
	switch val := models.OrNull(v).(type) {
	case models.Null:
		e.buf.WriteString("null")
	case models.Bool:
		e.buf.WriteString(val.String())
	case models.Int:
		e.buf.WriteString(val.String())
	case models.Long:
		e.buf.WriteString(val.String())
	case models.Double:
		if !val.IsFinite() {
			return errors.NewUnsupportedValueError(
				fmt.Sprintf("%s cannot be written as JSON", val.String()),
				errors.ErrNonFiniteNumber,
			)
		}
		e.buf.WriteString(val.String())
	case models.String:
		return e.quote(string(val))
	case models.List:
		e.open('[')
		for i, item := range val {
			e.next(i)
			if err := e.value(item); err != nil {
				return err
			}
		}
		e.close(']', len(val) == 0)
	case *models.Map:
		return e.object(val.Keys(), val.Get)
	default:
		return errors.NewUnsupportedValueError(fmt.Sprintf("value of type %T", v), nil)
	}
	return nil
}

// quote writes s as a JSON string with HTML escaping turned off, so '<', '>' and '&' are
// written as themselves.
func (e *encoder) quote(s string) error {
	quoted, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return errors.NewFormatError(fmt.Sprintf("failed to encode string %q", s), err)
	}
	e.buf.Write(quoted)
	return nil
}

func (e *encoder) open(c byte) {
	e.buf.WriteByte(c)
	e.depth++
}

func (e *encoder) close(c byte, empty bool) {
	e.depth--
	if !empty {
		e.newline()
	}
	e.buf.WriteByte(c)
}

// next starts the i-th member of the enclosing container.
func (e *encoder) next(i int) {
	if i > 0 {
		e.buf.WriteByte(',')
	}
	e.newline()
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < e.depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func fieldError(key string, err error) error {
	if appErr, ok := err.(*errors.AppError); ok && appErr.Type == errors.ErrorTypeUnsupportedValue {
		return errors.NewUnsupportedValueError(fmt.Sprintf("field '%s': %s", key, appErr.Message), appErr.Err)
	}
	return err
}
