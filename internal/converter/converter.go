// Package converter runs a single conversion: it reads one input file,
// parses it with the codec for its extension and writes the records with
// the codec for the output extension.
package converter

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcncl/dataconv/internal/config"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/format"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
)

const (
	outputFileMode = 0o644
	outputDirMode  = 0o755
)

// Result summarizes a finished conversion.
type Result struct {
	InputFormat  format.Format
	OutputFormat format.Format
	Records      int
	Bytes        int
}

// Converter converts between files. Locations may be local paths or any
// URL supported by afs.
type Converter struct {
	cfg    *config.Config
	fs     afs.Service
	logger *zap.Logger
}

// New creates a Converter. A nil cfg uses defaults and a nil logger
// discards log output.
func New(cfg *config.Config, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		cfg:    cfg,
		fs:     afs.New(),
		logger: logger,
	}
}

// Convert reads input, converts it and writes output. Both formats are
// taken from the file extensions. The output's parent directory is created
// when missing and an existing output is overwritten.
func (c *Converter) Convert(ctx context.Context, input, output string) (*Result, error) {
	if input == "" {
		return nil, errors.NewInputError("no input file given", errors.ErrNoInput)
	}
	if output == "" {
		return nil, errors.NewInputError("no output file given", errors.ErrNoOutput)
	}

	inFormat, err := format.Detect(input)
	if err != nil {
		return nil, err
	}
	outFormat, err := format.Detect(output)
	if err != nil {
		return nil, err
	}
	reader, err := format.CodecFor(inFormat, c.cfg)
	if err != nil {
		return nil, err
	}
	writer, err := format.CodecFor(outFormat, c.cfg)
	if err != nil {
		return nil, err
	}

	inURL, err := location(input)
	if err != nil {
		return nil, err
	}
	outURL, err := location(output)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("starting conversion",
		zap.String("input", inURL),
		zap.Stringer("inputFormat", inFormat),
		zap.String("output", outURL),
		zap.Stringer("outputFormat", outFormat),
	)

	data, err := c.readInput(ctx, inURL)
	if err != nil {
		return nil, errors.WithPath(err, input)
	}

	records, err := reader.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithPath(err, input)
	}
	c.logger.Debug("parsed input", zap.Int("records", len(records)), zap.Int("bytes", len(data)))

	var buf bytes.Buffer
	if err := writer.Write(&buf, records); err != nil {
		return nil, errors.WithPath(err, output)
	}

	if err := c.writeOutput(ctx, outURL, buf.Bytes()); err != nil {
		return nil, errors.WithPath(err, output)
	}
	c.logger.Debug("wrote output", zap.String("output", outURL), zap.Int("bytes", buf.Len()))

	return &Result{
		InputFormat:  inFormat,
		OutputFormat: outFormat,
		Records:      len(records),
		Bytes:        buf.Len(),
	}, nil
}

// readInput checks that the input is an existing, non-empty regular file
// and returns its content.
func (c *Converter) readInput(ctx context.Context, URL string) ([]byte, error) {
	exists, err := c.fs.Exists(ctx, URL)
	if err != nil {
		return nil, errors.NewIOError("failed to check input file", err)
	}
	if !exists {
		return nil, errors.NewInputError("input file does not exist", errors.ErrFileNotFound)
	}

	object, err := c.fs.Object(ctx, URL)
	if err != nil {
		return nil, errors.NewIOError("failed to inspect input file", err)
	}
	if object.IsDir() {
		return nil, errors.NewInputError("input is a directory, not a file", errors.ErrNotRegularFile)
	}
	if object.Size() == 0 {
		return nil, errors.NewInputError("input file is empty", errors.ErrFileEmpty)
	}

	data, err := c.fs.Download(ctx, object)
	if err != nil {
		return nil, errors.NewIOError("failed to read input file", err)
	}
	return data, nil
}

func (c *Converter) writeOutput(ctx context.Context, URL string, data []byte) error {
	parent, _ := url.Split(URL, "file")
	exists, err := c.fs.Exists(ctx, parent)
	if err != nil {
		return errors.NewIOError("failed to check output directory", err)
	}
	if !exists {
		c.logger.Debug("creating output directory", zap.String("dir", parent))
		if err := c.fs.Create(ctx, parent, outputDirMode, true); err != nil {
			return errors.NewIOError("failed to create output directory", err)
		}
	}

	if err := c.fs.Upload(ctx, URL, outputFileMode, bytes.NewReader(data)); err != nil {
		return errors.NewIOError("failed to write output file", err)
	}
	return nil
}

// location turns a local path into an absolute one. URLs with a scheme
// are used as given.
func location(p string) (string, error) {
	if strings.Contains(p, "://") {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("cannot resolve path %q", p), errors.ErrInvalidFilePath)
	}
	return abs, nil
}
