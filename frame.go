package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// frameHeaderSize is the flag byte plus the little-endian u64 payload length.
const frameHeaderSize = 1 + 8

var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrShortHeader       = errors.New("frame header too short")
	ErrTruncated         = errors.New("frame payload truncated")
	ErrLengthOverflow    = errors.New("frame length exceeds addressable size")
	ErrDecompress        = errors.New("decompression failed")
	ErrInputTooLarge     = errors.New("buffer length exceeds 32-bit range")
	ErrDimensionOverflow = errors.New("image dimensions overflow 32-bit range")
	ErrBufferOverflow    = errors.New("buffer larger than pixel grid")
	ErrBufferTooSmall    = errors.New("buffer too small")
)

// FrameStrategy turns a payload into the buffer that gets padded into pixels,
// and recovers the payload from the unpacked channel buffer.
type FrameStrategy interface {
	Build(payload []byte) ([]byte, error)
	Parse(buf []byte) ([]byte, error)
}

// HeaderedFrame stores a compression flag and the payload length in front of
// the payload, so decoding recovers exactly the original bytes.
//
// Layout: [flag 1][length 8, little-endian][payload][padding...]
type HeaderedFrame struct {
	// Compressor is tried on every payload. Nil means zlib at best compression.
	Compressor Compressor
	// Log receives the compression fallback diagnostic. Nil discards it.
	Log Logger
}

func (f HeaderedFrame) Build(payload []byte) ([]byte, error) {
	c := f.Compressor
	if c == nil {
		c = ZlibCompressor{}
	}
	compressed, data := tryCompress(c, payload, f.Log)
	return buildFrame(compressed, data), nil
}

func (f HeaderedFrame) Parse(buf []byte) ([]byte, error) {
	return parseFrame(buf)
}

// HeaderlessFrame packs the payload as-is. Nothing records its length, so
// Parse returns the payload followed by whatever zero padding the grid needed.
type HeaderlessFrame struct{}

func (HeaderlessFrame) Build(payload []byte) ([]byte, error) {
	return bytes.Clone(payload), nil
}

func (HeaderlessFrame) Parse(buf []byte) ([]byte, error) {
	return bytes.Clone(buf), nil
}

func buildFrame(compressed bool, payload []byte) []byte {
	buf := make([]byte, frameHeaderSize, frameHeaderSize+len(payload))
	if compressed {
		buf[0] = 1
	}
	binary.LittleEndian.PutUint64(buf[1:frameHeaderSize], uint64(len(payload)))
	return append(buf, payload...)
}

// parseFrame isolates the payload of a headered channel buffer. Bytes after
// the declared length are padding and are never inspected.
func parseFrame(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyInput
	}
	compressed := buf[0] != 0

	if len(buf) < frameHeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrShortHeader, len(buf), frameHeaderSize)
	}
	length := binary.LittleEndian.Uint64(buf[1:frameHeaderSize])
	if length > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", ErrLengthOverflow, length)
	}

	rest := buf[frameHeaderSize:]
	if uint64(len(rest)) < length {
		return nil, fmt.Errorf("%w: header declares %d bytes, %d available", ErrTruncated, length, len(rest))
	}
	data := rest[:length]

	if compressed {
		return decompress(data)
	}
	return bytes.Clone(data), nil
}
