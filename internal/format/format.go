// Package format maps file extensions to formats and formats to codecs.
package format

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/mcncl/dataconv/internal/config"
	"github.com/mcncl/dataconv/internal/csvcodec"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/jsoncodec"
	"github.com/mcncl/dataconv/internal/models"
	"github.com/mcncl/dataconv/internal/xmlcodec"
)

// Format identifies a supported serialization.
type Format int

const (
	Unknown Format = iota
	JSON
	XML
	CSV
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case XML:
		return "xml"
	case CSV:
		return "csv"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == Unknown {
		return ""
	}
	return "." + f.String()
}

var byExtension = map[string]Format{
	".json": JSON,
	".xml":  XML,
	".csv":  CSV,
}

// Codec parses and writes records in one format.
type Codec interface {
	Parse(r io.Reader) ([]*models.Record, error)
	Write(w io.Writer, records []*models.Record) error
}

// Detect returns the format named by the extension of p. Matching is
// case-insensitive. p may be a local path or a URL.
func Detect(p string) (Format, error) {
	if i := strings.IndexAny(p, "?#"); i >= 0 && strings.Contains(p, "://") {
		p = p[:i]
	}

	ext := strings.ToLower(path.Ext(strings.ReplaceAll(p, "\\", "/")))
	if ext == "" {
		return Unknown, &errors.AppError{
			Type:    errors.ErrorTypeInvalidFormat,
			Message: "cannot determine format: file has no extension (expected .json, .xml or .csv)",
			Path:    p,
			Err:     errors.ErrMissingExtension,
		}
	}

	f, ok := byExtension[ext]
	if !ok {
		return Unknown, &errors.AppError{
			Type:    errors.ErrorTypeInvalidFormat,
			Message: fmt.Sprintf("extension %q is not supported (expected .json, .xml or .csv)", ext),
			Path:    p,
			Err:     errors.ErrUnsupportedExtension,
		}
	}
	return f, nil
}

// CodecFor returns the codec for f configured from cfg. A nil cfg uses
// the defaults.
func CodecFor(f Format, cfg *config.Config) (Codec, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	switch f {
	case JSON:
		return jsoncodec.New(jsoncodec.Options{Indent: cfg.JSON.Indent}), nil
	case XML:
		return xmlcodec.New(xmlcodec.Options{
			Indent:        cfg.XML.Indent,
			Declaration:   cfg.XML.Declaration,
			SanitizeNames: cfg.XML.SanitizeNames,
		}), nil
	case CSV:
		return csvcodec.New(csvcodec.Options{
			WithHeaders: cfg.CSV.WithHeaders,
			Delimiter:   cfg.Delimiter(),
		}), nil
	default:
		return nil, errors.NewInvalidFormatError(
			fmt.Sprintf("no codec for format %s", f),
			errors.ErrUnsupportedExtension,
		)
	}
}
