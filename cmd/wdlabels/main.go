// Command wdlabels reads a JSON array of entities (such as a Wikidata JSON
// dump) and writes one "id<TAB>english label" line per entity.
//
// Usage:
//
//	wdlabels [flags] < latest-all.json.gz > labels.tsv
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cespare/xxhash/v2"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/arnodel/labelstream/extract"
	"github.com/arnodel/labelstream/internal/config"
	"github.com/arnodel/labelstream/internal/format"
	"github.com/arnodel/labelstream/internal/input"
	"github.com/arnodel/labelstream/internal/trace"
	"github.com/arnodel/labelstream/parser"
)

const version = "0.1.0"

// cli defines the command-line interface.  Flags left at their zero value
// do not override the config file.
type cli struct {
	Input       string           `help:"Path to the input dump. Reads stdin if not specified or \"-\"." short:"i"`
	Output      string           `help:"Path to the output file. Writes to stdout if not specified." short:"o"`
	Config      string           `help:"Path to a YAML config file. Defaults to the nearest .labelstream.yml." short:"c"`
	SkipInvalid bool             `help:"Log and skip records without an id or English label instead of stopping."`
	MaxDepth    int              `help:"Maximum nesting depth of the document (default 512)."`
	BufferSize  int              `help:"Size in bytes of the input buffer (default 65536)."`
	Compression string           `help:"Input compression: auto, none, gzip, zstd, bzip2, lz4, s2."`
	Trace       bool             `help:"Log every top-level grammar event to stderr."`
	Color       string           `help:"Colorize stderr: auto, always, never."`
	Digest      bool             `help:"Report an xxHash64 digest of the output."`
	Version     kong.VersionFlag `help:"Show version information." short:"v"`
}

// kongExit is used to unwind run when kong wants to exit (e.g. after --help).
type kongExit int

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see the EPIPE check in run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the program with the given arguments and streams and returns
// the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var opts cli
	k, err := kong.New(&opts,
		kong.Name("wdlabels"),
		kong.Description("Extract the id and English label of every entity in a JSON dump."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": "wdlabels version " + version},
		kong.Exit(func(code int) { panic(kongExit(code)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}
	defer func() {
		if r := recover(); r != nil {
			exit, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			code = int(exit)
		}
	}()
	if _, err := k.Parse(args); err != nil {
		k.Errorf("%s", err)
		fmt.Fprintf(stderr, "\nFor help, run: wdlabels --help\n")
		return 1
	}

	cfg, err := loadConfig(&opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}

	var colorizer *format.Colorizer
	switch cfg.Color {
	case "always":
		colorizer = &format.DefaultColorizer
	case "auto":
		if isTerminal(stderr) {
			colorizer = &format.DefaultColorizer
		}
	}
	logw := stderr
	if f, ok := stderr.(*os.File); ok && colorizer != nil {
		logw = colorable.NewColorable(f)
	}
	logger := log.New(logw, "", 0)

	if err := extractLabels(&opts, cfg, stdin, stdout, logger, colorizer); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		logger.Print(colorizer.Error("error: " + err.Error()))
		return 1
	}
	return 0
}

// loadConfig reads the config file, if any, and applies the flags on top of
// it.
func loadConfig(opts *cli) (*config.Config, error) {
	path := opts.Config
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	if opts.SkipInvalid {
		cfg.Mode = extract.Skip.String()
	}
	if opts.MaxDepth != 0 {
		cfg.MaxDepth = opts.MaxDepth
	}
	if opts.BufferSize != 0 {
		cfg.BufferSize = opts.BufferSize
	}
	if opts.Compression != "" {
		cfg.Compression = opts.Compression
	}
	if opts.Trace {
		cfg.Trace = true
	}
	if opts.Color != "" {
		cfg.Color = opts.Color
	}
	if opts.Digest {
		cfg.Digest = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func extractLabels(opts *cli, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *log.Logger, colorizer *format.Colorizer) (err error) {
	compression, err := cfg.InputCompression()
	if err != nil {
		return err
	}
	mode, err := cfg.ExtractMode()
	if err != nil {
		return err
	}

	in, err := input.Open(opts.Input, stdin, compression)
	if err != nil {
		return err
	}
	defer in.Close()

	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		stdout = f
	}

	out := bufio.NewWriter(stdout)
	printer := &format.LinePrinter{Writer: out}

	// If we are writing to a terminal, flush after each line so user gets feedback early.
	if isTerminal(stdout) {
		printer.Flusher = out
	}
	if cfg.Digest {
		printer.Digest = xxhash.New()
	}

	extractor := extract.New(printer, extract.WithMode(mode), extract.WithLogger(logger))
	var ctx parser.Context = extractor
	if cfg.Trace {
		ctx = trace.New(extractor, logger, colorizer)
	}

	p := parser.NewParserSize(in, cfg.BufferSize)
	p.MaxDepth = cfg.MaxDepth
	parseErr := p.Parse(ctx)

	// Lines emitted before a failure stay in the output.
	if err := out.Flush(); err != nil && parseErr == nil {
		parseErr = err
	}
	if parseErr != nil {
		return parseErr
	}

	stats := extractor.Stats()
	logger.Printf("%d elements read.", stats.Elements)
	if mode == extract.Skip {
		logger.Printf("%d lines written, %d skipped.", stats.Emitted, stats.Skipped)
	}
	if printer.Digest != nil {
		logger.Printf("digest %s", format.FormatDigest(printer.Digest.Sum64()))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
