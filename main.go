package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/dataconv/internal/config"
	"github.com/mcncl/dataconv/internal/converter"
	"github.com/mcncl/dataconv/internal/errors"
	"go.uber.org/zap"
)

// CLI defines the command-line interface
var CLI struct {
	Input      string `help:"Path or URL of the input file (.json, .xml or .csv)." short:"i"`
	Output     string `help:"Path or URL of the output file (.json, .xml or .csv)." short:"o"`
	Headers    bool   `help:"Write a header row when the output is CSV." default:"true" negatable:""`
	CSVMapping bool   `help:"Skip the CSV header row (same as --no-headers)." name:"csv-mapping"`
	Config     string `help:"Path to a config file. Defaults to the nearest .dataconv.yml." short:"c"`
	Debug      bool   `help:"Enable debug logging." short:"d"`
	Version    bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *zap.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("dataconv"),
		kong.Description("Convert data files between JSON, XML and CSV"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("dataconv version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err != nil {
		fail(err)
	}
	defer func() { _ = ctx.Logger.Sync() }()

	if err := run(ctx); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: dataconv --help\n")
	os.Exit(1)
}

// newContext resolves configuration and builds the logger
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Headers && !CLI.CSVMapping, CLI.Debug)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	logger, err := newLogger(cfg.Dev.Debug)
	if err != nil {
		return nil, errors.NewConfigError("failed to create logger", err)
	}
	if configPath != "" {
		logger.Debug("loaded config", zap.String("path", configPath))
	}

	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// run executes the main program logic
func run(ctx *Context) error {
	if CLI.Input == "" {
		return errors.NewInputError("missing --input flag", errors.ErrNoInput)
	}
	if CLI.Output == "" {
		return errors.NewInputError("missing --output flag", errors.ErrNoOutput)
	}

	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	conv := converter.New(ctx.Config, logger)
	result, err := conv.Convert(context.Background(), CLI.Input, CLI.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Converted %d record(s): %s -> %s\n", result.Records, CLI.Input, CLI.Output)
	return nil
}
