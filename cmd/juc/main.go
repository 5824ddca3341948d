// Command juc compresses and decompresses JSON and NDJSON files.
//
// Usage:
//
//	juc compress --in doc.json --out doc.jco [--codec hybrid]
//	juc decompress --in doc.jco --out doc.json
//	juc compress-ndjson --in logs.ndjson --out logs.jco --columnar
//	juc decompress-ndjson --in logs.jco --out slim.ndjson --fields ts,level
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	jsonultra "github.com/fayez-kaabi/json-ultra-compress"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "juc: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: juc <compress|decompress|compress-ndjson|decompress-ndjson> [flags]")
	}
	verb := os.Args[1]

	fs := flag.NewFlagSet(verb, flag.ExitOnError)
	in := fs.String("in", "-", "input path, - for stdin")
	out := fs.String("out", "-", "output path, - for stdout")
	codec := fs.String("codec", "hybrid", "codec: hybrid, dense, fast, lz4, identity")
	columnar := fs.Bool("columnar", false, "columnar front-end for NDJSON")
	fields := fs.String("fields", "", "comma-separated fields for selective decode")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unknown arguments: %v", fs.Args())
	}
	slog.SetDefault(initLogger(*logLevel))

	input, err := readInput(*in)
	if err != nil {
		return err
	}

	start := time.Now()
	var output []byte
	switch verb {
	case "compress":
		output, err = jsonultra.Compress(input, jsonultra.WithCodec(format.CodecType(*codec)))
	case "decompress":
		output, err = jsonultra.Decompress(input)
	case "compress-ndjson":
		output, err = jsonultra.CompressNDJSON(input,
			jsonultra.WithCodec(format.CodecType(*codec)),
			jsonultra.WithColumnar(*columnar))
	case "decompress-ndjson":
		var opts []jsonultra.DecodeOption
		if *fields != "" {
			opts = append(opts, jsonultra.WithFields(strings.Split(*fields, ",")...))
		}
		output, err = jsonultra.DecompressNDJSON(input, opts...)
	default:
		return fmt.Errorf("unknown verb %q", verb)
	}
	if err != nil {
		return err
	}

	slog.Info("done", "verb", verb,
		"in_bytes", len(input), "out_bytes", len(output),
		"elapsed", time.Since(start))

	return writeOutput(*out, output)
}

func initLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	w := os.Stderr
	return slog.New(tint.NewHandler(colorable.NewColorable(w), &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	}))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
