package main

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/xfmoulet/qoi"
)

const benchPayloadSize = 1 << 20

// benchPayload is half text, half noise, so both compressors have work to do.
func benchPayload() []byte {
	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), benchPayloadSize/2/44+1)
	return append(text[:benchPayloadSize/2], makePayload(benchPayloadSize/2, 1)...)
}

func benchmarkEncodeDecode(b *testing.B, encode func() ([]byte, error), decode func([]byte) error) {
	// Warm-up outside timed section.
	enc, err := encode()
	if err != nil {
		b.Fatalf("encode failed: %v", err)
	}
	if err := decode(enc); err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	if testing.Verbose() {
		b.Logf("size=%d bytes", len(enc))
	}

	b.SetBytes(int64(benchPayloadSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc, err := encode()
		if err != nil {
			b.Fatalf("encode failed: %v", err)
		}
		if err := decode(enc); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

// BenchmarkCompressors runs the full PNG pipeline with each compressor.
func BenchmarkCompressors(b *testing.B) {
	payload := benchPayload()

	for _, bc := range []struct {
		name string
		c    *Codec
	}{
		{name: "zlib", c: NewRGBACodec(ZlibCompressor{}, nil)},
		{name: "zstd", c: NewRGBACodec(ZstdCompressor{}, nil)},
		{name: "raw", c: NewRGBCodec(nil)},
	} {
		b.Run(bc.name, func(b *testing.B) {
			var buf bytes.Buffer
			var r bytes.Reader
			benchmarkEncodeDecode(b,
				func() ([]byte, error) {
					buf.Reset()
					if err := bc.c.EncodeTo(&buf, payload); err != nil {
						return nil, err
					}
					return buf.Bytes(), nil
				},
				func(enc []byte) error {
					r.Reset(enc)
					_, err := bc.c.DecodeFrom(&r)
					return err
				},
			)
		})
	}
}

// BenchmarkContainers compares PNG against QOI for storing the same opaque
// three-channel grid.
func BenchmarkContainers(b *testing.B) {
	img, err := NewRGBCodec(nil).Encode(benchPayload())
	if err != nil {
		b.Fatalf("encode failed: %v", err)
	}

	containers := []struct {
		name   string
		encode func(*bytes.Buffer, image.Image) error
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{
			name:   "PNG",
			encode: func(w *bytes.Buffer, m image.Image) error { return png.Encode(w, m) },
			decode: func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		},
		{
			name:   "QOI",
			encode: func(w *bytes.Buffer, m image.Image) error { return qoi.Encode(w, m) },
			decode: func(r *bytes.Reader) (image.Image, error) { return qoi.Decode(r) },
		},
	}

	for _, ct := range containers {
		b.Run(ct.name, func(b *testing.B) {
			var buf bytes.Buffer
			var r bytes.Reader

			if testing.Verbose() {
				start := time.Now()
				if err := ct.encode(&buf, img); err != nil {
					b.Fatalf("%s encode failed: %v", ct.name, err)
				}
				b.Logf("encode=%v size=%d bytes", time.Since(start), buf.Len())
			}

			benchmarkEncodeDecode(b,
				func() ([]byte, error) {
					buf.Reset()
					if err := ct.encode(&buf, img); err != nil {
						return nil, err
					}
					return buf.Bytes(), nil
				},
				func(enc []byte) error {
					r.Reset(enc)
					_, err := ct.decode(&r)
					return err
				},
			)
		})
	}
}

func BenchmarkSolveDimensions(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, _, err := solveDimensions(i&0xffffff, 4); err != nil {
			b.Fatal(err)
		}
	}
}
