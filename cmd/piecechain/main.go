// Package main is the entry point for the piecechain command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/piecechain/internal/config"
	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks command line mistakes; run prints usage for them.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	configPath  string
	logLevel    string
	output      string
	showVersion bool
	args        []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("piecechain", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (default "+config.DefaultPath+")")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	fs.StringVar(&opts.output, "o", "", "Write replay output to this file instead of stdout")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "piecechain - piece table text buffer tools\n\n")
		fmt.Fprintf(stderr, "Usage: piecechain [options] <command> <file> [script]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  cat <file>              Print the file's text\n")
		fmt.Fprintf(stderr, "  dump <file>             Print the piece chain as JSON\n")
		fmt.Fprintf(stderr, "  stats <file|dump.json>  Print piece chain statistics\n")
		fmt.Fprintf(stderr, "  replay <file> <script>  Apply a .yaml or .lua edit script\n")
		fmt.Fprintf(stderr, "  view <file>             Open the file in the terminal viewer\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.args = fs.Args()

	if opts.logLevel != "" && !logging.ValidLevel(opts.logLevel) {
		return opts, fmt.Errorf("%w: invalid log level %q (must be debug, info, warn, or error)", errUsage, opts.logLevel)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "piecechain %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	level := cfg.Level()
	if opts.logLevel != "" {
		level = logging.ParseLevel(opts.logLevel)
	}
	logger := logging.New(logging.Config{Level: level, Output: stderr, Prefix: "piecechain"})
	logging.Set(logger)

	app := &app{
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}

	if err := app.dispatch(ctx, opts.args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Run 'piecechain -h' for usage.\n")
			return 2
		}
		return 1
	}
	return 0
}

// app carries the state shared by every command.
type app struct {
	cfg    config.Config
	opts   options
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd, rest := args[0], args[1:]
	want := 1
	if cmd == "replay" {
		want = 2
	}
	if len(rest) != want {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, cmd, want, len(rest))
	}

	a.logger.Debug("running %s on %v", cmd, rest)

	switch cmd {
	case "cat":
		return a.cat(rest[0])
	case "dump":
		return a.dump(rest[0])
	case "stats":
		return a.stats(rest[0])
	case "replay":
		return a.replay(ctx, rest[0], rest[1])
	case "view":
		return a.view(ctx, rest[0])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// docOptions returns the document options selected by the configuration.
func (a *app) docOptions() []document.Option {
	if a.cfg.LineBreakPieces {
		return []document.Option{document.WithLineBreakPieces()}
	}
	return nil
}
