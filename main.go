package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	name := "pixbin"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	opts, err := ParseArgs(args)
	if err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(stderr, usageText(name))
		}
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	diag := log.New(stderr, "", 0)
	var verbose Logger
	if opts.Verbose {
		verbose = log.New(stderr, "", log.Ltime|log.Lmicroseconds)
	}

	codec, err := newCodec(opts, diag, verbose)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	switch opts.Mode {
	case ModeEncode:
		err = encodeFile(codec, opts.Input, opts.Output)
	case ModeDecode:
		err = decodeFile(codec, opts.Input, opts.Output)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	if opts.Mode == ModeEncode {
		fmt.Fprintf(stdout, "Encoded %s → %s\n", opts.Input, opts.Output)
	} else {
		fmt.Fprintf(stdout, "Decoded %s → %s\n", opts.Input, opts.Output)
	}
	return 0
}

// newCodec builds the codec for opts. diag gets the compression fallback
// warning; verbose, when non-nil, gets per-step details.
func newCodec(opts Options, diag, verbose Logger) (*Codec, error) {
	if opts.RGB {
		return NewRGBCodec(verbose), nil
	}
	comp, err := compressorByName(opts.Compressor)
	if err != nil {
		return nil, err
	}
	c := NewRGBACodec(comp, diag)
	c.Log = verbose
	return c, nil
}

func encodeFile(c *Codec, inPath, outPath string) error {
	payload, err := readFile(inPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.EncodeTo(&buf, payload); err != nil {
		return fmt.Errorf("encode %s: %w", inPath, err)
	}
	return writeFile(outPath, &buf)
}

func decodeFile(c *Codec, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	payload, err := c.DecodeFrom(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	return writeBytes(outPath, payload)
}
