// Package jsoncodec reads and writes records as JSON: a single object for one
// record, an array of objects otherwise.
package jsoncodec

import (
	"bytes"
	stdjson "encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	json "github.com/goccy/go-json"
	"github.com/mcncl/dataconv/internal/errors" // Custom errors package
	"github.com/mcncl/dataconv/internal/models"
)

// Parse reads a JSON document and converts it into records. A top-level
// object yields one record; a top-level array yields one record per element,
// with non-object elements becoming empty records.
func Parse(reader io.Reader) ([]*models.Record, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewIOError("failed to read JSON input", err)
	}
	return ParseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) ([]*models.Record, error) {
	return ParseBytes([]byte(jsonString))
}

// ParseBytes parses a complete JSON document held in memory.
func ParseBytes(data []byte) ([]*models.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	// jsonparser is lenient about some malformed input, so validate the
	// whole document first and only then walk it. go-json also rejects
	// numbers outside the float64 range, which are valid JSON and read as
	// ±Inf, so its verdict is confirmed against the plain grammar check.
	if !json.Valid(data) && !stdjson.Valid(data) {
		return nil, syntaxError(data)
	}

	root, dataType, end, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.NewFormatError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
	}
	if end < len(data) && len(bytes.TrimSpace(data[end:])) > 0 {
		return nil, errors.NewFormatError(
			fmt.Sprintf("unexpected data after the top-level value at offset %d", end),
			errors.ErrInvalidJSON,
		)
	}

	switch dataType {
	case jsonparser.Object:
		record, err := parseRecord(root)
		if err != nil {
			return nil, err
		}
		return []*models.Record{record}, nil
	case jsonparser.Array:
		records := make([]*models.Record, 0)
		var walkErr error
		_, err := jsonparser.ArrayEach(root, func(value []byte, elemType jsonparser.ValueType, offset int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			if elemType != jsonparser.Object {
				records = append(records, models.NewRecord())
				return
			}
			record, err := parseRecord(value)
			if err != nil {
				walkErr = err
				return
			}
			records = append(records, record)
		})
		if err == nil {
			err = walkErr
		}
		if err != nil {
			return nil, asFormatError(err)
		}
		return records, nil
	default:
		return nil, errors.NewFormatError(
			fmt.Sprintf("expected an object or array at the top level, got %s", dataType),
			errors.ErrUnexpectedRoot,
		)
	}
}

// syntaxError re-decodes invalid input to report where it breaks.
func syntaxError(data []byte) error {
	var decoded any
	err := json.Unmarshal(data, &decoded)
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewFormatError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if err != nil {
		return errors.NewFormatError(fmt.Sprintf("JSON syntax error: %v", err), errors.ErrInvalidJSON)
	}
	return errors.NewFormatError("JSON syntax error", errors.ErrInvalidJSON)
}

func asFormatError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.NewFormatError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
}

func parseRecord(object []byte) (*models.Record, error) {
	record := models.NewRecord()
	err := jsonparser.ObjectEach(object, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseValue(value, dataType)
		if err != nil {
			return err
		}
		record.Set(string(key), v)
		return nil
	})
	if err != nil {
		return nil, asFormatError(err)
	}
	return record, nil
}

func parseMap(object []byte) (*models.Map, error) {
	m := models.NewMap()
	err := jsonparser.ObjectEach(object, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseValue(value, dataType)
		if err != nil {
			return err
		}
		m.Set(string(key), v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseList(array []byte) (models.List, error) {
	list := make(models.List, 0)
	var walkErr error
	_, err := jsonparser.ArrayEach(array, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = err
			return
		}
		v, err := parseValue(value, dataType)
		if err != nil {
			walkErr = err
			return
		}
		list = append(list, v)
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return list, nil
}

func parseValue(data []byte, dataType jsonparser.ValueType) (models.Value, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return models.String(s), nil
	case jsonparser.Number:
		return parseNumber(string(data))
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return models.Bool(b), nil
	case jsonparser.Null:
		return models.NullValue, nil
	case jsonparser.Array:
		return parseList(data)
	case jsonparser.Object:
		return parseMap(data)
	default:
		return nil, fmt.Errorf("unknown JSON value type %s", dataType)
	}
}

// parseNumber keeps integers integral: literals without a fraction or
// exponent become Int or Long, everything else becomes Double. Integers past
// the 64-bit range fall back to Double.
func parseNumber(text string) (models.Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return models.Integer(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if stderrors.As(err, &numErr) && stderrors.Is(numErr.Err, strconv.ErrRange) {
			return models.Double(f), nil
		}
		return nil, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return models.Double(f), nil
}
