package main

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

// solveDimensions returns the grid a buffer of n bytes is padded into.
//
// Start from w = ceil(sqrt(n)), round it up to the next multiple of divisor
// (a full divisor is added when w is already a multiple) and take
// height = width/divisor - 1. Grids too small for n, or with no rows, are
// grown one divisor of width at a time, so width%divisor == 0,
// height == width/divisor-1 and width*height*divisor >= n always hold.
func solveDimensions(n, divisor int) (width, height int, err error) {
	if divisor <= 0 {
		return 0, 0, fmt.Errorf("invalid channel divisor %d", divisor)
	}
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, n)
	}

	w := uint64(ceilSqrt(uint64(n)))
	d := uint64(divisor)
	wd := w + (d - w%d)
	hd := wd/d - 1
	for hd == 0 || wd*hd*d < uint64(n) {
		wd += d
		hd = wd/d - 1
	}

	if wd*hd*d > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %dx%dx%d", ErrDimensionOverflow, wd, hd, d)
	}
	return int(wd), int(hd), nil
}

// ceilSqrt returns the smallest r with r*r >= n, for n < 2^32.
func ceilSqrt(n uint64) uint32 {
	lo, hi := uint64(0), uint64(1<<16)
	for lo < hi {
		mid := (lo + hi) / 2
		if mid*mid >= n {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return uint32(lo)
}

// pack pads buf with zero bytes up to size.
func pack(buf []byte, size int) ([]byte, error) {
	if len(buf) > size {
		return nil, fmt.Errorf("%w: %d > %d", ErrBufferOverflow, len(buf), size)
	}
	out := make([]byte, size)
	copy(out, buf)
	return out, nil
}

// newGrid lays a channel buffer out as a w×h image, row-major with channels
// interleaved per pixel. Three-channel buffers get an opaque alpha.
func newGrid(buf []byte, w, h, channels int) (*image.NRGBA, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	if w <= 0 || h <= 0 || len(buf) != w*h*channels {
		return nil, fmt.Errorf("%w: %d bytes for %dx%dx%d", ErrBufferTooSmall, len(buf), w, h, channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if channels == 4 {
		copy(img.Pix, buf)
		return img, nil
	}

	dst := img.Pix
	for i := 0; i < len(buf)/3; i++ {
		dst[i*4] = buf[i*3]
		dst[i*4+1] = buf[i*3+1]
		dst[i*4+2] = buf[i*3+2]
		dst[i*4+3] = 0xff
	}
	return img, nil
}

// unpack flattens img back into a channel buffer: rows top to bottom, pixels
// left to right, then R, G, B and, for four channels, A.
func unpack(img image.Image, channels int) []byte {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = imageToNRGBA(img)
	}
	b := src.Bounds()
	w := b.Dx()

	out := make([]byte, 0, w*b.Dy()*channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		row := src.Pix[i : i+w*4]
		if channels == 4 {
			out = append(out, row...)
			continue
		}
		for x := 0; x < w; x++ {
			out = append(out, row[x*4:x*4+channels]...)
		}
	}
	return out
}

// imageToNRGBA copies any image.Image into an *image.NRGBA with bounds
// starting at (0,0). The PNG decoder yields *image.RGBA for opaque files;
// with full alpha the conversion is exact.
func imageToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
