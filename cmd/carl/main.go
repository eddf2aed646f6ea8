/*
Carl translates Notation3 (N3) documents into the N3P Prolog-compatible
serialization consumed by a backward/forward rule engine.

Usage:

	carl [-b base-uri] [-o output-file] [--decimal-mode literal|rational]
	     [--encoding utf8|cesu8] [--config file] [input-files...]

The flags are:

	-b, --base URI
		Sets the initial base IRI. Defaults per input file to a file://
		URL derived from its path (file:///dev/stdin for "-").

	-o, --output FILE
		Writes the N3P output to FILE. "-" or omitted means standard
		output.

	--decimal-mode literal|rational
		Selects how xsd:decimal literals are rendered: as a repaired
		Prolog number literal, or as an exact "N rdiv D" ratio.

	--encoding utf8|cesu8
		Selects the output byte encoding for IRIs and string literals.

	--config FILE
		Loads defaults for the flags above from a TOML file; explicit
		flags on the command line take precedence.

	-v, --version
		Prints the carl version and exits.

input-files of "-" means standard input; if none are given, no input is
read and an empty translation (prologue + scount(0) + end_of_file) is
produced. Exit code is 0 on success, nonzero on I/O or parse failure; parse
failures print "parse error at line N: <message>" to stderr.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/gmels/carl/internal/config"
	"github.com/gmels/carl/internal/version"
	"github.com/gmels/carl/n3base"
	"github.com/gmels/carl/n3lex"
	"github.com/gmels/carl/n3out"
	"github.com/gmels/carl/n3parse"
)

const (
	exitSuccess = iota
	exitIOError
	exitParseError
)

var (
	flagVersion     = pflag.BoolP("version", "v", false, "print the carl version and exit")
	flagBase        = pflag.StringP("base", "b", "", "initial base IRI")
	flagOutput      = pflag.StringP("output", "o", "-", "output file, or \"-\" for stdout")
	flagDecimalMode = pflag.String("decimal-mode", "literal", "decimal literal rendering: literal|rational")
	flagEncoding    = pflag.String("encoding", "utf8", "output byte encoding: utf8|cesu8")
	flagConfig      = pflag.String("config", "", "optional TOML config file")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	runID := uuid.New()

	if *flagVersion {
		fmt.Printf("carl %s (run %s)\n", version.Current, runID)
		return exitSuccess
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carl: %v\n", err)
		return exitIOError
	}

	base := *flagBase
	if base == "" {
		base = cfg.Base
	}

	decimalModeFlag := *flagDecimalMode
	if !pflag.CommandLine.Changed("decimal-mode") && cfg.DecimalMode != "" {
		decimalModeFlag = string(cfg.DecimalMode)
	}
	decimalMode, err := config.ParseDecimalMode(decimalModeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carl: %v\n", err)
		return exitIOError
	}

	encodingFlag := *flagEncoding
	if !pflag.CommandLine.Changed("encoding") && cfg.Encoding != "" {
		encodingFlag = string(cfg.Encoding)
	}
	encoding, err := config.ParseEncoding(encodingFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carl: %v\n", err)
		return exitIOError
	}

	outputPath := *flagOutput
	if !pflag.CommandLine.Changed("output") && cfg.Output != "" {
		outputPath = cfg.Output
	}
	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carl: %v\n", err)
		return exitIOError
	}
	defer closeOut()

	writerCfg := n3out.Config{
		DecimalMode:               n3outDecimalMode(decimalMode),
		Encoding:                  n3outEncoding(encoding),
		EmitPredicateDeclarations: encoding == config.EncodingCESU8,
	}
	writer := n3out.NewWriter(out, writerCfg, lineEnding())

	inputs := pflag.Args()
	if len(inputs) == 0 {
		writer.Start()
		writer.End()
		return exitSuccess
	}

	// Parser.Parse calls writer.Start()/writer.End() itself once per input
	// (n3parse.Sink's documented contract), so translate must not be
	// wrapped in another Start/End pair here.
	for _, path := range inputs {
		if err := translate(path, base, writer); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", formatCLIError(err))
			writer.End()
			return exitCodeFor(err)
		}
	}
	return exitSuccess
}

func translate(path, baseFlag string, sink n3parse.Sink) error {
	in, closeIn, err := openInput(path)
	if err != nil {
		return err
	}
	defer closeIn()

	base := n3base.IRI(baseFlag)
	if base == "" {
		base = defaultBase(path)
	}

	lexer := n3lex.New(in)
	parser := n3parse.New(lexer, base, sink)
	return parser.Parse()
}

func defaultBase(path string) n3base.IRI {
	if path == "-" {
		return n3base.IRI("file:///dev/stdin")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return n3base.IRI("file://" + filepath.ToSlash(abs))
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func n3outDecimalMode(m config.DecimalMode) n3out.DecimalMode {
	if m == config.DecimalRational {
		return n3out.DecimalRationalMode
	}
	return n3out.DecimalLiteralMode
}

func n3outEncoding(e config.Encoding) n3out.Encoding {
	if e == config.EncodingCESU8 {
		return n3out.CESU8
	}
	return n3out.UTF8
}

// formatCLIError renders a parse failure exactly per spec.md §6:
// "parse error at line N: <message>"; any other error (I/O) is reported
// with a plain "carl: " prefix.
func formatCLIError(err error) string {
	if pe, ok := err.(*n3parse.ParseError); ok {
		return fmt.Sprintf("parse error at %s", pe.Error())
	}
	return fmt.Sprintf("carl: %v", err)
}

func exitCodeFor(err error) int {
	if _, ok := err.(*n3parse.ParseError); ok {
		return exitParseError
	}
	return exitIOError
}
