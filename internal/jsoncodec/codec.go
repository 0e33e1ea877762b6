package jsoncodec

import (
	"io"

	"github.com/mcncl/dataconv/internal/models"
)

// Codec binds Parse and Write to a fixed set of options.
type Codec struct {
	Options Options
}

// New creates a Codec with the given options.
func New(opts Options) *Codec {
	return &Codec{Options: opts}
}

func (c *Codec) Parse(r io.Reader) ([]*models.Record, error) {
	return Parse(r)
}

func (c *Codec) Write(w io.Writer, records []*models.Record) error {
	return Write(w, records, c.Options)
}
