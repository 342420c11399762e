// pixbin stores arbitrary bytes as a lossless raster image and recovers them.
// Bytes are framed (optionally compressed, with a length header), padded
// into a near-square grid of pixels and written as PNG.

package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// Codec maps a payload to a pixel grid and back.
type Codec struct {
	// Channels per pixel: 4 (RGBA) or 3 (RGB).
	Channels int
	// Frame builds the pre-padding buffer and parses it back.
	Frame FrameStrategy
	// Reshape emits the solved width×height grid as (width/2)×(height*2).
	Reshape bool
	// Log receives verbose diagnostics. Nil discards them.
	Log Logger
}

// NewRGBACodec returns the four-channel codec with a compressed, headered
// frame. Decoding reproduces the payload exactly.
func NewRGBACodec(c Compressor, log Logger) *Codec {
	return &Codec{
		Channels: 4,
		Frame:    HeaderedFrame{Compressor: c, Log: log},
		Reshape:  true,
		Log:      log,
	}
}

// NewRGBCodec returns the three-channel codec. The payload is stored raw
// with no header, so decoding returns it followed by the zero padding the
// grid needed.
func NewRGBCodec(log Logger) *Codec {
	return &Codec{
		Channels: 3,
		Frame:    HeaderlessFrame{},
		Log:      log,
	}
}

func (c *Codec) logf(format string, args ...any) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}

// Encode turns payload into an image whose pixels carry the framed bytes.
func (c *Codec) Encode(payload []byte) (*image.NRGBA, error) {
	buf, err := c.Frame.Build(payload)
	if err != nil {
		return nil, fmt.Errorf("build frame: %w", err)
	}

	width, height, err := solveDimensions(len(buf), c.Channels)
	if err != nil {
		return nil, err
	}
	padded, err := pack(buf, width*height*c.Channels)
	if err != nil {
		return nil, err
	}

	imgW, imgH := width, height
	if c.Reshape {
		imgW, imgH = width/2, height*2
	}
	c.logf("frame %d bytes, grid %dx%d, image %dx%d, %d channels",
		len(buf), width, height, imgW, imgH, c.Channels)

	return newGrid(padded, imgW, imgH, c.Channels)
}

// Decode recovers the payload from an image produced by Encode.
func (c *Codec) Decode(img image.Image) ([]byte, error) {
	buf := unpack(img, c.Channels)
	c.logf("unpacked %d bytes from %dx%d image", len(buf), img.Bounds().Dx(), img.Bounds().Dy())

	payload, err := c.Frame.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("parse frame: %w", err)
	}
	return payload, nil
}

// EncodeTo encodes payload and writes it to w as PNG.
func (c *Codec) EncodeTo(w io.Writer, payload []byte) error {
	img, err := c.Encode(payload)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// DecodeFrom reads an image in any registered lossless format and decodes it.
func (c *Codec) DecodeFrom(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return c.Decode(img)
}
