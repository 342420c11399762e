package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// zstdMagic opens every zstd frame. No zlib stream starts with it:
// 0x28b5 fails the zlib header check (CMF*256+FLG must be a multiple of 31).
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Compressor is the black-box transform applied to a payload before framing.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
}

// Logger receives non-fatal diagnostics. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

// ZlibCompressor produces zlib streams at the given level.
// The zero value uses zlib.BestCompression.
type ZlibCompressor struct {
	Level int
}

func (c ZlibCompressor) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zlib.BestCompression
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ZstdCompressor produces a single zstd frame at the best compression level.
type ZstdCompressor struct{}

func (ZstdCompressor) Compress(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, make([]byte, 0, len(src)/2+64)), nil
}

// tryCompress runs c over payload. A compressor failure is not an encoding
// failure: the payload is kept raw and the problem is reported through log.
// The compressed result is used even when it is larger than the input.
func tryCompress(c Compressor, payload []byte, log Logger) (bool, []byte) {
	if log == nil {
		log = discardLogger{}
	}
	comp, err := c.Compress(payload)
	if err != nil {
		log.Printf("compression failed: %v. encoding raw bytes...", err)
		return false, bytes.Clone(payload)
	}
	return true, comp
}

// decompress inflates a stored payload, picking zstd or zlib by its magic.
func decompress(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		return decompressZstd(data)
	}
	return decompressZlib(data)
}

func decompressZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrDecompress, err)
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrDecompress, err)
	}
	return plain, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrDecompress, err)
	}
	return plain, nil
}

// compressorByName maps a command line name to a Compressor.
func compressorByName(name string) (Compressor, error) {
	switch name {
	case "", "zlib":
		return ZlibCompressor{}, nil
	case "zstd":
		return ZstdCompressor{}, nil
	}
	return nil, errors.New("unknown compressor " + name)
}
