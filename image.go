package pngcore

import (
	"fmt"

	"github.com/tilecodec/pngcore/errs"
)

// Image is the canonical in-memory raster every codec boundary converts
// to/from: a rectangular array of 8-bit premultiplied BGRA samples (byte 0
// of each pixel is blue), stored row-major with an explicit byte stride so
// rows may be padded.
//
// Invariants: for any pixel with A == 0, B == G == R == 0; for any pixel,
// B <= A, G <= A, R <= A; and Stride*(Height-1) + Width*4 <= len(Pix).
//
// The caller owns an Image for its entire lifetime: EncodeRGBA and
// EncodeIndexed only read it, and Decode populates a freshly allocated one.
type Image struct {
	Width  int
	Height int
	Stride int // bytes per row; must be >= Width*4
	Pix    []byte
}

// maxPixBytes bounds how large a single Image's Pix buffer NewImage will
// attempt to allocate. Go's make, unlike a malloc that can return NULL,
// panics on an allocation it can't satisfy; this cap turns an
// unreasonable request into an ordinary error instead, the Go-idiomatic
// analogue of the original allocator's malloc-then-check-NULL guard.
const maxPixBytes = 1 << 30 // 1 GiB: far beyond any map tile's raster

// NewImage allocates a zeroed Image (fully transparent black) of the given
// dimensions, with the minimum valid stride (Width*4).
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pngcore: new image %dx%d: %w", width, height, errs.ErrInvalidInput)
	}
	stride := width * 4
	total := int64(stride) * int64(height)
	if total > maxPixBytes {
		return nil, fmt.Errorf("pngcore: new image %dx%d needs %d bytes: %w", width, height, total, errs.ErrAllocationFailure)
	}
	return &Image{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}, nil
}

// validate checks the structural invariants the encoder relies on: that
// Pix is large enough for Stride and Height, and that Stride doesn't cut
// off part of a row. It does not walk every pixel (that would defeat the
// purpose of a cheap boundary check); per-pixel premultiplication
// invariants are the caller's responsibility to uphold, the same way a
// standard image.Image implementation trusts its Pix buffer once Bounds()
// has been validated.
func (m *Image) validate() error {
	if m == nil || m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("pngcore: image has non-positive dimensions: %w", errs.ErrInvalidInput)
	}
	if m.Stride < m.Width*4 {
		return fmt.Errorf("pngcore: stride %d too small for width %d: %w", m.Stride, m.Width, errs.ErrInvalidInput)
	}
	need := m.Stride*(m.Height-1) + m.Width*4
	if len(m.Pix) < need {
		return fmt.Errorf("pngcore: pixel buffer has %d bytes, need %d: %w", len(m.Pix), need, errs.ErrInvalidInput)
	}
	return nil
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride + x*4
}

// At returns the premultiplied BGRA sample at (x, y) as (B, G, R, A).
func (m *Image) At(x, y int) (b, g, r, a uint8) {
	i := m.PixOffset(x, y)
	p := m.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Set writes a premultiplied BGRA sample at (x, y).
func (m *Image) Set(x, y int, b, g, r, a uint8) {
	i := m.PixOffset(x, y)
	p := m.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = b, g, r, a
}
