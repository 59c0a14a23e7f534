// pyzip - shrink Python source into a URL-safe string
//
// Usage:
//
//	pyzip encode [flags] [file]      Encode text into an artifact
//	pyzip decode [flags] [file]      Decode an artifact
//	pyzip compress [flags] [file]    Minify (with -minify), encode and URL-quote
//	pyzip decompress [flags] [file]  Unquote and decode
//	pyzip version                    Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/seiflotfy/pyzip"
	"github.com/seiflotfy/pyzip/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "version":
		fmt.Printf("pyzip %s\n", version)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "encode", "decode", "compress", "decompress":
	default:
		fmt.Fprintf(os.Stderr, "pyzip: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "", "path to a pyzip.toml file")
	threshold := fs.Int("threshold", pyzip.DefaultThreshold, "payload length above which compression is tried (negative: always)")
	rawOut := fs.Bool("raw", false, "do not percent-quote (compress/decompress)")
	runMinify := fs.Bool("minify", false, "run pyminify before encoding (compress)")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	_ = fs.Parse(os.Args[2:])

	logger := zap.NewNop().Sugar()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fatal("logger: %v", err)
		}
		defer func() { _ = l.Sync() }()
		logger = l.Sugar()
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal("%v", err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			cfg.Codec.Threshold = *threshold
		}
	})
	if *rawOut {
		cfg.Codec.URLSafe = false
	}
	if *runMinify {
		cfg.Minify.Enabled = true
	}

	input, err := readInput(fs.Arg(0))
	if err != nil {
		fatal("read input: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	codec := pyzip.New(cfg.Options(logger)...)
	var out string
	switch cmd {
	case "encode":
		out, err = codec.Encode(input)
	case "decode":
		out, err = codec.Decode(trimNewline(input))
	case "compress":
		out, err = codec.Compress(ctx, input)
	case "decompress":
		out, err = codec.Decompress(trimNewline(input))
	}
	if err != nil {
		var fe *pyzip.FrameError
		switch {
		case errors.As(err, &fe):
			fatal("%s: malformed input: %v", cmd, fe)
		case errors.Is(err, pyzip.ErrSyntax):
			fatal("%s: minifier rejected input: %v", cmd, err)
		default:
			fatal("%s: %v", cmd, err)
		}
	}

	fmt.Print(out)
	if cmd == "encode" || cmd == "compress" {
		fmt.Println()
	}
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// trimNewline drops the line break encode prints after an artifact. Only
// '\n' is removed: it always encodes as a code, while '\r' may end an ident.
func trimNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pyzip: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `pyzip - shrink Python source into a URL-safe string

Usage:
  pyzip encode [flags] [file]      Encode text into an artifact
  pyzip decode [flags] [file]      Decode an artifact
  pyzip compress [flags] [file]    Minify (with -minify), encode and URL-quote
  pyzip decompress [flags] [file]  Unquote and decode
  pyzip version                    Print version info

Flags:
  -config FILE     read settings from a pyzip.toml file
  -threshold N     compression threshold (negative: always try)
  -raw             do not percent-quote
  -minify          run pyminify before encoding
  -v               debug logging`)
}
