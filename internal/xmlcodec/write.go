package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// Options controls XML output
type Options struct {
	// Indent is repeated once per nesting level. Empty disables pretty printing.
	Indent string
	// Declaration emits <?xml version="1.0" encoding="UTF-8"?> first.
	Declaration bool
	// SanitizeNames rewrites field names that are not valid element names.
	// When false such names fail the write.
	SanitizeNames bool
}

// DefaultOptions returns two-space indentation with a declaration.
func DefaultOptions() Options {
	return Options{
		Indent:        "  ",
		Declaration:   true,
		SanitizeNames: true,
	}
}

// Write serializes records to w under a <records> root, one <record> per
// record and one child element per field. Null is an empty element, a Map
// nests one element per key, and a List nests one <item> per entry.
func Write(w io.Writer, records []*models.Record, opts Options) error {
	var buf bytes.Buffer
	if opts.Declaration {
		buf.WriteString(xml.Header)
	}

	wr := &writer{
		enc:   xml.NewEncoder(&buf),
		opts:  opts,
		names: make(map[string]string),
	}
	wr.enc.Indent("", opts.Indent)

	if err := wr.records(records); err != nil {
		return err
	}
	if err := wr.enc.Flush(); err != nil {
		return errors.NewFormatError("failed to encode XML", err)
	}
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.NewIOError("failed to write XML output", err)
	}
	return nil
}

type writer struct {
	enc   *xml.Encoder
	opts  Options
	names map[string]string
}

func (wr *writer) records(records []*models.Record) error {
	root := xml.StartElement{Name: xml.Name{Local: RootElement}}
	if err := wr.token(root); err != nil {
		return err
	}
	for _, record := range records {
		start := xml.StartElement{Name: xml.Name{Local: RecordElement}}
		if err := wr.token(start); err != nil {
			return err
		}
		if err := wr.fields(record.Keys(), record.Get); err != nil {
			return err
		}
		if err := wr.token(start.End()); err != nil {
			return err
		}
	}
	return wr.token(root.End())
}

// fields writes one element per key. Keys of the same parent must map to
// distinct element names, otherwise they would read back as a List.
func (wr *writer) fields(keys []string, get func(string) (models.Value, bool)) error {
	used := make(map[string]string, len(keys))
	for _, key := range keys {
		name, err := wr.elementName(key)
		if err != nil {
			return err
		}
		if prev, ok := used[name]; ok {
			return errors.NewUnsupportedValueError(
				fmt.Sprintf("fields %q and %q both map to element <%s>", prev, key, name),
				errors.ErrInvalidElementName,
			)
		}
		used[name] = key

		v, _ := get(key)
		if err := wr.element(key, name, v); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) element(field, name string, v models.Value) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := wr.token(start); err != nil {
		return err
	}

	switch val := models.OrNull(v).(type) {
	case models.Null:
		// empty element
	case models.List:
		for _, item := range val {
			if err := wr.element(field, ItemElement, item); err != nil {
				return err
			}
		}
	case *models.Map:
		if err := wr.fields(val.Keys(), val.Get); err != nil {
			return err
		}
	default:
		text := val.String()
		if !isXMLText(text) {
			return errors.NewUnsupportedValueError(
				fmt.Sprintf("field '%s' contains a character XML cannot represent", field),
				errors.ErrInvalidXMLChar,
			)
		}
		if err := wr.token(xml.CharData(text)); err != nil {
			return err
		}
	}

	return wr.token(start.End())
}

func (wr *writer) elementName(field string) (string, error) {
	if name, ok := wr.names[field]; ok {
		return name, nil
	}

	name := field
	if !isElementName(field) {
		if !wr.opts.SanitizeNames {
			return "", errors.NewUnsupportedValueError(
				fmt.Sprintf("field name %q cannot be used as an XML element", field),
				errors.ErrInvalidElementName,
			)
		}
		name = sanitizeName(field)
	}
	wr.names[field] = name
	return name, nil
}

// isXMLText reports whether every rune of s is a legal XML 1.0 character.
// The encoder would otherwise substitute U+FFFD for the rest.
func isXMLText(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return false
			}
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}

func (wr *writer) token(t xml.Token) error {
	if err := wr.enc.EncodeToken(t); err != nil {
		return errors.NewFormatError("failed to encode XML", err)
	}
	return nil
}
