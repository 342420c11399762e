package main

import (
	"fmt"
	"strings"
)

// Mode selects the direction of the transform.
type Mode int

const (
	ModeEncode Mode = iota
	ModeDecode
)

// usageError is a command line mistake; main prints the usage text for it.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// Options is the parsed command line.
type Options struct {
	Mode       Mode
	Input      string
	Output     string
	RGB        bool   // three-channel, headerless variant
	Compressor string // "zlib" or "zstd"
	Verbose    bool
}

// ParseArgs parses the arguments after the program name:
//
//	<-e|-d> <in.file> [out.file] [-rgb] [-zstd] [-v]
func ParseArgs(args []string) (Options, error) {
	var opts Options

	if len(args) == 0 {
		return opts, usageErr("expected a mode and an input file.")
	}
	switch args[0] {
	case "-e":
		opts.Mode = ModeEncode
	case "-d":
		opts.Mode = ModeDecode
	default:
		return opts, usageErr("invalid mode " + args[0])
	}

	var positional []string
	for _, a := range args[1:] {
		switch {
		case a == "-rgb":
			opts.RGB = true
		case a == "-zstd":
			opts.Compressor = "zstd"
		case a == "-v":
			opts.Verbose = true
		case strings.HasPrefix(a, "-") && a != "-":
			return opts, usageErr("unknown option " + a)
		default:
			positional = append(positional, a)
		}
	}

	switch len(positional) {
	case 0:
		return opts, usageErr("missing input file.")
	case 1, 2:
	default:
		return opts, usageErr(fmt.Sprintf("unexpected argument %s", positional[2]))
	}

	opts.Input = positional[0]
	if len(positional) == 2 {
		opts.Output = positional[1]
	} else if opts.Mode == ModeEncode {
		opts.Output = withExtension(opts.Input, "png")
	} else {
		opts.Output = withExtension(opts.Input, "bin")
	}
	return opts, nil
}

func usageErr(msg string) error {
	return &usageError{msg: msg}
}

// usageText is printed before the ERROR line for command line mistakes.
func usageText(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "USAGE: %s <-e|-d> <in.file> [out.file] [-rgb] [-zstd] [-v]\n", name)
	b.WriteString("Modes:\n")
	b.WriteString("-e: Encode bytes as color to png\n")
	b.WriteString("-d: Decode png data back to bytes\n")
	b.WriteString("Options:\n")
	b.WriteString("-rgb: 3-channel pixels, no header (decoded output keeps zero padding)\n")
	b.WriteString("-zstd: compress with zstd instead of zlib\n")
	b.WriteString("-v: verbose diagnostics\n")
	return b.String()
}
